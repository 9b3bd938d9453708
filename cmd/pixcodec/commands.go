package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ironsheep/pixcodec/internal/config"
	"github.com/ironsheep/pixcodec/internal/transcode"
)

// encodeFlags registers --mode, --depth and --carrier on flags.
func encodeFlags(flags *pflag.FlagSet) (mode *string, depth *int, carrier *string) {
	mode = flags.StringP("mode", "m", "", "static or hidden (default from config)")
	depth = flags.IntP("depth", "d", 0, "hidden-mode bits per channel: 2, 4 or 6 (default from config)")
	carrier = flags.StringP("carrier", "c", "", "carrier image for hidden mode")
	return mode, depth, carrier
}

// resolveOptions fills omitted mode and depth from the config.
func resolveOptions(cfg *config.Config, mode string, depth int, carrier string) (transcode.Options, error) {
	m, d, err := cfg.Encode.Apply(mode, depth)
	if err != nil {
		return transcode.Options{}, &usageError{msg: err.Error()}
	}
	return transcode.Options{Mode: m, Depth: d, CarrierPath: carrier}, nil
}

// setup loads the config and builds a transcoder logging to stderr.
func setup(env *cliEnv, configPath string) (*config.Config, *transcode.Transcoder, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, transcode.New(nil, cfg.LoggerTo(env.stderr)), nil
}

func runEncode(env *cliEnv, args []string) error {
	flags, configPath := newFlagSet(env, "encode", "(--text TEXT | --in FILE) --out IMAGE [flags]")
	mode, depth, carrier := encodeFlags(flags)
	text := flags.StringP("text", "t", "", "text payload")
	in := flags.StringP("in", "i", "", "file whose bytes are the payload")
	out := flags.StringP("out", "o", "", "output PNG path (required)")
	if ok, err := parse(flags, args); !ok {
		return err
	}

	if *out == "" {
		return usagef("encode: --out is required")
	}
	textSet := flags.Changed("text")
	if textSet == (*in != "") {
		return usagef("encode: exactly one of --text or --in is required")
	}

	cfg, tc, err := setup(env, *configPath)
	if err != nil {
		return err
	}
	opts, err := resolveOptions(cfg, *mode, *depth, *carrier)
	if err != nil {
		return err
	}

	var result *transcode.EncodeResult
	if textSet {
		result, err = tc.EncodeText(*text, *out, opts)
	} else {
		result, err = tc.EncodeFile(*in, *out, opts)
	}
	if err != nil {
		return err
	}
	return printJSON(env.stdout, result)
}

func runDecode(env *cliEnv, args []string) error {
	flags, configPath := newFlagSet(env, "decode", "IMAGE [--out FILE]")
	out := flags.StringP("out", "o", "", "write the payload to FILE instead of stdout")
	if ok, err := parse(flags, args); !ok {
		return err
	}
	if flags.NArg() != 1 {
		return usagef("decode: expected one image path, got %d arguments", flags.NArg())
	}

	_, tc, err := setup(env, *configPath)
	if err != nil {
		return err
	}

	if *out != "" {
		d, err := tc.DecodeToFile(flags.Arg(0), *out)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.stderr, "wrote %d bytes to %s (blake3 %s)\n", len(d.Payload), *out, d.Digest)
		return nil
	}

	d, err := tc.DecodeFile(flags.Arg(0))
	if err != nil {
		return err
	}
	_, err = env.stdout.Write(d.Payload)
	return err
}

func runInspect(env *cliEnv, args []string) error {
	flags, configPath := newFlagSet(env, "inspect", "IMAGE")
	if ok, err := parse(flags, args); !ok {
		return err
	}
	if flags.NArg() != 1 {
		return usagef("inspect: expected one image path, got %d arguments", flags.NArg())
	}

	_, tc, err := setup(env, *configPath)
	if err != nil {
		return err
	}
	ins, err := tc.Inspect(flags.Arg(0))
	if err != nil {
		return err
	}
	return printJSON(env.stdout, ins)
}

func runCapacity(env *cliEnv, args []string) error {
	flags, configPath := newFlagSet(env, "capacity", "--bytes N [flags]")
	mode, depth, carrier := encodeFlags(flags)
	n := flags.IntP("bytes", "b", -1, "payload length in bytes (required)")
	if ok, err := parse(flags, args); !ok {
		return err
	}
	if *n < 0 {
		return usagef("capacity: --bytes must be a non-negative integer")
	}

	cfg, tc, err := setup(env, *configPath)
	if err != nil {
		return err
	}
	opts, err := resolveOptions(cfg, *mode, *depth, *carrier)
	if err != nil {
		return err
	}
	plan, err := tc.Plan(*n, opts)
	if err != nil {
		return err
	}
	return printJSON(env.stdout, plan)
}

func runCarrier(env *cliEnv, args []string) error {
	flags, configPath := newFlagSet(env, "carrier", "--out IMAGE [flags]")
	out := flags.StringP("out", "o", "", "output PNG path (required)")
	width := flags.Int("width", 0, "width in pixels (default from config)")
	height := flags.Int("height", 0, "height in pixels (default from config)")
	blur := flags.Float64("blur", 0, "Gaussian blur radius (default from config)")
	if ok, err := parse(flags, args); !ok {
		return err
	}
	if *out == "" {
		return usagef("carrier: --out is required")
	}

	cfg, tc, err := setup(env, *configPath)
	if err != nil {
		return err
	}
	if *width == 0 {
		*width = cfg.Carrier.Width
	}
	if *height == 0 {
		*height = cfg.Carrier.Height
	}
	if !flags.Changed("blur") {
		*blur = cfg.Carrier.Blur
	}

	info, err := tc.GenerateCarrier(*out, *width, *height, *blur)
	if err != nil {
		return err
	}
	return printJSON(env.stdout, info)
}
