package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/ironsheep/pixcodec/internal/config"
	"github.com/ironsheep/pixcodec/internal/server"
	"github.com/ironsheep/pixcodec/internal/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("pixcodec-mcp", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to YAML config file (default: $"+config.EnvConfig+")")
	showVersion := flags.BoolP("version", "v", false, "print version information")
	flags.Usage = func() { printHelp(flags) }

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Println(version.Full("pixcodec-mcp"))
		return nil
	}

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		return err
	}

	// Logging goes to stderr; stdout is the MCP protocol stream.
	logger := cfg.NewLogger()
	logger.Debug("starting pixcodec MCP server",
		"version", version.Version,
		"build_time", version.BuildTime,
		"commit", version.GitCommit,
	)

	srv := server.NewWithConfig(cfg, logger)
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func printHelp(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `pixcodec-mcp - MCP server for encoding data into images

Usage: pixcodec-mcp [options]

This server communicates via MCP protocol over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).

Environment variables:
  %s=path       Config file, when --config is not given
  %s=debug   Override the configured log level

Options:
`, config.EnvConfig, config.EnvLogLevel)
	flags.SetOutput(os.Stderr)
	flags.PrintDefaults()
}
