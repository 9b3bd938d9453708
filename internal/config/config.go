// Package config loads pixcodec configuration.
//
// Configuration comes from a single YAML file named by the --config flag or
// the PIXCODEC_CONFIG environment variable. When neither is set the built-in
// defaults are used. PIXCODEC_LOG_LEVEL, when set, overrides log_level.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/pixcodec/internal/codec"
)

const (
	// EnvConfig names the environment variable holding the config file path.
	EnvConfig = "PIXCODEC_CONFIG"

	// EnvLogLevel names the environment variable overriding log_level.
	EnvLogLevel = "PIXCODEC_LOG_LEVEL"
)

// Config is the complete pixcodec configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Encode holds the defaults used when a request omits mode or depth.
	Encode EncodeConfig `yaml:"encode"`

	// Carrier holds the defaults for synthetic carrier generation.
	Carrier CarrierConfig `yaml:"carrier"`

	// Server configures the MCP server.
	Server ServerConfig `yaml:"server"`
}

// EncodeConfig holds encoding defaults.
type EncodeConfig struct {
	// Mode is "static" or "hidden".
	Mode codec.Mode `yaml:"mode"`

	// Depth is the hidden-mode bit depth (2, 4 or 6). Static mode always uses 8.
	Depth int `yaml:"depth"`
}

// CarrierConfig holds synthetic carrier defaults.
type CarrierConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Blur   float64 `yaml:"blur"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	// CacheCarriers keeps decoded carrier images in memory between tool calls.
	CacheCarriers bool `yaml:"cache_carriers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Encode: EncodeConfig{
			Mode:  codec.ModeStatic,
			Depth: 2,
		},
		Carrier: CarrierConfig{
			Width:  256,
			Height: 256,
			Blur:   1.5,
		},
		Server: ServerConfig{
			CacheCarriers: true,
		},
	}
}

// Resolve picks the config file from flagPath, then PIXCODEC_CONFIG, and
// falls back to Default when neither is set. Environment overrides are
// applied and the result is validated.
func Resolve(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads configuration from path, merged over Default.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// DepthFor returns the depth to encode with in mode: the configured hidden
// depth, or StaticDepth for static mode.
func (e EncodeConfig) DepthFor(mode codec.Mode) int {
	if mode == codec.ModeStatic {
		return codec.StaticDepth
	}
	return e.Depth
}

// Apply fills an omitted mode name or zero depth from the configured
// defaults. A zero depth in static mode resolves to StaticDepth; an explicit
// depth is passed through for the codec to accept or reject.
func (e EncodeConfig) Apply(mode string, depth int) (codec.Mode, int, error) {
	m := e.Mode
	if mode != "" {
		parsed, err := codec.ParseMode(mode)
		if err != nil {
			return 0, 0, err
		}
		m = parsed
	}
	if depth == 0 {
		depth = e.DepthFor(m)
	}
	return m, depth, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !c.Encode.Mode.Valid() {
		return fmt.Errorf("encode.mode: %w", codec.ErrInvalidMode)
	}
	if _, err := codec.HiddenAlignment(c.Encode.Depth); err != nil {
		return fmt.Errorf("encode.depth: %w", err)
	}
	if c.Carrier.Width <= 0 || c.Carrier.Height <= 0 {
		return fmt.Errorf("carrier size must be positive, got %dx%d", c.Carrier.Width, c.Carrier.Height)
	}
	if c.Carrier.Blur < 0 {
		return fmt.Errorf("carrier.blur must not be negative, got %g", c.Carrier.Blur)
	}
	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// NewLogger returns a text logger writing to stderr at the configured level.
// Stdout is reserved for protocol traffic and decoded payloads.
func (c *Config) NewLogger() *slog.Logger {
	return c.LoggerTo(os.Stderr)
}

// LoggerTo returns a text logger writing to w at the configured level.
func (c *Config) LoggerTo(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}
