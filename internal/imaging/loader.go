package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixcodec/internal/codec"
)

var (
	// ErrIO reports a failure reading or writing an image file.
	ErrIO = errors.New("image i/o failed")

	// ErrUnsupportedImage reports an image the codec cannot carry data in,
	// such as one with transparent pixels.
	ErrUnsupportedImage = errors.New("unsupported image")
)

// ImageCache provides thread-safe caching of decoded carrier images.
//
// Entries are keyed by the exact path string passed to Load. Cached buffers
// are shared between callers and must be treated as read-only; the codec
// never writes to a carrier.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	carrier, err := cache.Load("/path/to/carrier.png")
//	if err != nil {
//	    return err
//	}
//	cache.Evict("/path/to/carrier.png") // Optional: free memory
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*codec.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*codec.Image),
	}
}

// Load retrieves an image from the cache or reads it from disk if not cached.
//
// Errors are those of ReadImage; failed reads are not cached.
func (c *ImageCache) Load(path string) (*codec.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ReadImage decodes an image file into an RGB pixel buffer.
//
// Any format registered with the image package can be read (PNG, JPEG, GIF,
// BMP and TIFF are registered by the imaging library). Only the first frame
// of an animated image is used.
//
// # Errors
//
//   - ErrIO if the file cannot be opened or is not a decodable image
//   - ErrUnsupportedImage if any pixel is not fully opaque
func ReadImage(path string) (*codec.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %w", ErrIO, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image %s: %w", ErrIO, path, err)
	}
	return FromImage(img)
}

// ReadImageData decodes an in-memory encoded image into an RGB pixel buffer.
func ReadImageData(data []byte) (*codec.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image data: %w", ErrIO, err)
	}
	return FromImage(img)
}

// FromImage flattens any image into a row-major RGB buffer.
//
// The image is normalized to 8-bit non-premultiplied RGBA first, so 16-bit
// sources lose their low byte. Transparent pixels are rejected because the
// alpha channel cannot be carried through an RGB buffer.
func FromImage(img image.Image) (*codec.Image, error) {
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}

	pix := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			if row[x+3] != 0xFF {
				return nil, fmt.Errorf("%w: pixel (%d,%d) is not opaque", ErrUnsupportedImage, x/4, y)
			}
			pix = append(pix, row[x], row[x+1], row[x+2])
		}
	}
	return &codec.Image{Pix: pix, Width: w, Height: h}, nil
}

// ToImage expands an RGB buffer into an opaque *image.NRGBA.
func ToImage(img *codec.Image) (*image.NRGBA, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i, j := 0, 0; i < len(img.Pix); i, j = i+3, j+4 {
		out.Pix[j] = img.Pix[i]
		out.Pix[j+1] = img.Pix[i+1]
		out.Pix[j+2] = img.Pix[i+2]
		out.Pix[j+3] = 0xFF
	}
	return out, nil
}

// EncodePNG serializes an RGB buffer as an 8-bit truecolor PNG.
func EncodePNG(img *codec.Image) ([]byte, error) {
	nrgba, err := ToImage(img)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, nrgba, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteImage writes an RGB buffer to path as PNG, whatever the extension.
// PNG is lossless, so every low-order payload bit survives. A partially
// written file is removed on failure.
func WriteImage(img *codec.Image, path string) (err error) {
	nrgba, err := ToImage(img)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create %s: %w", ErrIO, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close %s: %w", ErrIO, path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := imaging.Encode(f, nrgba, imaging.PNG); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrIO, path, err)
	}
	return nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that recognized the file: "png", "jpeg", "gif", ...
	// Detection is based on file contents, not the extension.
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// CapacityBytes is the RGB buffer size the image provides as a carrier.
	CapacityBytes int `json:"capacity_bytes"`
}

// Stat reads an image's header and returns its metadata without decoding
// the pixel data.
func Stat(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %w", ErrIO, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat file: %w", ErrIO, err)
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image header %s: %w", ErrIO, path, err)
	}

	return &ImageInfo{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
		FileSizeBytes: stat.Size(),
		CapacityBytes: cfg.Width * cfg.Height * 3,
	}, nil
}
