// Package transcode runs complete encode and decode workflows between
// payloads and image files.
//
// It glues the pure codec to the imaging file boundary: carriers are loaded
// (through an optional cache), payloads are digested with BLAKE3 so callers
// can verify a round trip, hidden-mode results report carrier distortion, and
// one structured log record is emitted per completed operation.
package transcode

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/zeebo/blake3"

	"github.com/ironsheep/pixcodec/internal/codec"
	"github.com/ironsheep/pixcodec/internal/imaging"
)

// Options selects how a payload is encoded.
type Options struct {
	Mode  codec.Mode
	Depth int

	// CarrierPath is the carrier image for hidden mode.
	CarrierPath string
}

// EncodeResult describes an image written by an encode workflow.
type EncodeResult struct {
	Output       string                    `json:"output"`
	Mode         codec.Mode                `json:"mode"`
	Depth        int                       `json:"depth"`
	Width        int                       `json:"width"`
	Height       int                       `json:"height"`
	PayloadBytes int                       `json:"payload_bytes"`
	Digest       string                    `json:"blake3"`
	Distortion   *imaging.DistortionResult `json:"distortion,omitempty"`
}

// Decoded is a payload recovered from an image.
type Decoded struct {
	Header codec.Header `json:"header"`

	// Payload is the raw recovered bytes.
	Payload []byte `json:"-"`

	// Digest is the BLAKE3-256 hex digest of Payload.
	Digest string `json:"blake3"`
}

// Text returns the payload as a string, failing if it is not valid UTF-8.
func (d *Decoded) Text() (string, error) {
	if !utf8.Valid(d.Payload) {
		return "", &codec.DecodeError{Reason: "payload", Err: codec.ErrInvalidUTF8}
	}
	return string(d.Payload), nil
}

// Transcoder runs encode/decode workflows. The zero value is not usable; use New.
type Transcoder struct {
	cache  *imaging.ImageCache
	logger *slog.Logger
}

// New creates a Transcoder. cache may be nil to read carriers from disk on
// every call. A nil logger means slog.Default.
func New(cache *imaging.ImageCache, logger *slog.Logger) *Transcoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transcoder{cache: cache, logger: logger}
}

// Digest returns the BLAKE3-256 hex digest of a payload.
func Digest(payload []byte) string {
	sum := blake3.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// EncodeBytes encodes payload into an image written to outPath as PNG.
// Nothing is written if encoding fails.
func (t *Transcoder) EncodeBytes(payload []byte, outPath string, opts Options) (*EncodeResult, error) {
	var carrier *codec.Image
	if opts.Mode == codec.ModeHidden {
		if opts.CarrierPath == "" {
			return nil, codec.ErrCarrierRequired
		}
		var err error
		carrier, err = t.loadCarrier(opts.CarrierPath)
		if err != nil {
			return nil, err
		}
	}

	img, err := codec.EncodeBytes(payload, opts.Mode, opts.Depth, carrier)
	if err != nil {
		return nil, err
	}
	if err := imaging.WriteImage(img, outPath); err != nil {
		return nil, err
	}
	t.evict(outPath)

	depth, _ := encodedDepth(img)
	result := &EncodeResult{
		Output:       outPath,
		Mode:         opts.Mode,
		Depth:        depth,
		Width:        img.Width,
		Height:       img.Height,
		PayloadBytes: len(payload),
		Digest:       Digest(payload),
	}
	if carrier != nil {
		result.Distortion, err = imaging.CompareCarrier(carrier, img)
		if err != nil {
			return nil, err
		}
	}

	t.logger.Info("encoded payload",
		"output", outPath,
		"mode", result.Mode,
		"depth", result.Depth,
		"width", result.Width,
		"height", result.Height,
		"payload_bytes", result.PayloadBytes,
		"blake3", result.Digest,
	)
	return result, nil
}

// EncodeText encodes a text payload. See EncodeBytes.
func (t *Transcoder) EncodeText(text, outPath string, opts Options) (*EncodeResult, error) {
	return t.EncodeBytes([]byte(text), outPath, opts)
}

// EncodeFile reads the payload from inPath and encodes it. See EncodeBytes.
func (t *Transcoder) EncodeFile(inPath, outPath string, opts Options) (*EncodeResult, error) {
	payload, err := os.ReadFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading payload: %w", imaging.ErrIO, err)
	}
	return t.EncodeBytes(payload, outPath, opts)
}

// DecodeFile recovers the payload from an image file.
func (t *Transcoder) DecodeFile(path string) (*Decoded, error) {
	img, err := imaging.ReadImage(path)
	if err != nil {
		return nil, err
	}
	return t.decode(img, path)
}

// DecodeData recovers the payload from an in-memory encoded image.
func (t *Transcoder) DecodeData(data []byte) (*Decoded, error) {
	img, err := imaging.ReadImageData(data)
	if err != nil {
		return nil, err
	}
	return t.decode(img, "<memory>")
}

// DecodeToFile recovers the payload from imagePath and writes it to outPath.
func (t *Transcoder) DecodeToFile(imagePath, outPath string) (*Decoded, error) {
	d, err := t.DecodeFile(imagePath)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(outPath, d.Payload, 0o644); err != nil {
		return nil, fmt.Errorf("%w: writing payload: %w", imaging.ErrIO, err)
	}
	t.evict(outPath)
	return d, nil
}

func (t *Transcoder) decode(img *codec.Image, source string) (*Decoded, error) {
	symbols, header, err := codec.Symbols(img.Pix)
	if err != nil {
		return nil, err
	}
	t.logger.Debug("read meta header",
		"source", source,
		"mode", header.Mode,
		"depth", header.Depth,
		"version", header.Version,
	)

	payload, err := codec.Unframe(symbols)
	if err != nil {
		return nil, err
	}

	d := &Decoded{Header: header, Payload: payload, Digest: Digest(payload)}
	t.logger.Info("decoded payload",
		"source", source,
		"mode", header.Mode,
		"depth", header.Depth,
		"payload_bytes", len(payload),
		"blake3", d.Digest,
	)
	return d, nil
}

// Inspection reports what an image file carries without unframing it.
type Inspection struct {
	Image   *imaging.ImageInfo `json:"image"`
	Header  *codec.Header      `json:"header,omitempty"`
	Symbols int                `json:"symbols,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Inspect reads an image and its meta header. A missing or invalid header is
// reported in Error rather than failing, since any image can be inspected.
func (t *Transcoder) Inspect(path string) (*Inspection, error) {
	info, err := imaging.Stat(path)
	if err != nil {
		return nil, err
	}
	img, err := imaging.ReadImage(path)
	if err != nil {
		return nil, err
	}

	out := &Inspection{Image: info}
	symbols, header, err := codec.Symbols(img.Pix)
	if err != nil {
		out.Error = err.Error()
		return out, nil
	}
	out.Header = &header
	out.Symbols = len(symbols)
	return out, nil
}

// Plan sizes a payload of n bytes against the options, loading the carrier
// for hidden mode.
func (t *Transcoder) Plan(n int, opts Options) (*codec.Plan, error) {
	var carrier *codec.Image
	if opts.Mode == codec.ModeHidden && opts.CarrierPath != "" {
		var err error
		carrier, err = t.loadCarrier(opts.CarrierPath)
		if err != nil {
			return nil, err
		}
	}
	return codec.PlanCapacity(n, opts.Mode, opts.Depth, carrier)
}

// GenerateCarrier writes a synthetic noise carrier to outPath.
func (t *Transcoder) GenerateCarrier(outPath string, width, height int, blur float64) (*imaging.ImageInfo, error) {
	img, err := imaging.GenerateCarrier(width, height, blur)
	if err != nil {
		return nil, err
	}
	if err := imaging.WriteImage(img, outPath); err != nil {
		return nil, err
	}
	t.evict(outPath)
	t.logger.Info("generated carrier", "output", outPath, "width", width, "height", height, "blur", blur)
	return imaging.Stat(outPath)
}

// PayloadView renders a payload for JSON transport: text when it is valid
// UTF-8, base64 otherwise.
func PayloadView(payload []byte) (text string, encoding string) {
	if utf8.Valid(payload) {
		return string(payload), "utf-8"
	}
	return base64.StdEncoding.EncodeToString(payload), "base64"
}

func (t *Transcoder) loadCarrier(path string) (*codec.Image, error) {
	if t.cache != nil {
		return t.cache.Load(path)
	}
	return imaging.ReadImage(path)
}

// evict drops a cached carrier for a path that was just overwritten.
func (t *Transcoder) evict(path string) {
	if t.cache != nil {
		t.cache.Evict(path)
	}
}

func encodedDepth(img *codec.Image) (int, error) {
	h, err := codec.ReadHeader(img.Pix)
	return h.Depth, err
}
