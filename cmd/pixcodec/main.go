// pixcodec encodes arbitrary data into lossless PNG images and back.
//
// Static mode writes a fresh image whose pixels are the payload. Hidden mode
// blends the payload into the low bits of an existing carrier image so the
// result looks like the carrier. Decoding needs no options: the mode and
// depth are read from the image.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/ironsheep/pixcodec/internal/config"
	"github.com/ironsheep/pixcodec/internal/version"
)

// usageError marks errors caused by bad arguments rather than failed work.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

type command struct {
	name    string
	summary string
	run     func(env *cliEnv, args []string) error
}

var commands = []command{
	{"encode", "encode text or a file into an image", runEncode},
	{"decode", "recover the payload from an encoded image", runDecode},
	{"inspect", "show image metadata and the meta header", runInspect},
	{"capacity", "plan whether a payload fits", runCapacity},
	{"carrier", "generate a noise carrier image", runCarrier},
	{"version", "print version information", runVersion},
}

// cliEnv carries the output streams so commands can be tested in-process.
type cliEnv struct {
	stdout io.Writer
	stderr io.Writer
}

func main() {
	env := &cliEnv{stdout: os.Stdout, stderr: os.Stderr}
	if err := run(env, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var ue *usageError
		if errors.As(err, &ue) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(env *cliEnv, args []string) error {
	if len(args) == 0 {
		printUsage(env.stderr)
		return usagef("no command given")
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage(env.stdout)
		return nil
	case "-v", "--version":
		return runVersion(env, nil)
	}

	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(env, args[1:])
		}
	}
	printUsage(env.stderr)
	return usagef("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "pixcodec - encode data into lossless PNG images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: pixcodec <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pixcodec <command> --help' for command flags.")
	fmt.Fprintf(w, "Environment: %s (config file), %s (log level)\n", config.EnvConfig, config.EnvLogLevel)
}

// newFlagSet returns a flag set with the flags every command shares.
func newFlagSet(env *cliEnv, name, usage string) (*pflag.FlagSet, *string) {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(env.stderr)
	configPath := flags.String("config", "", "path to YAML config file (default: $"+config.EnvConfig+")")
	flags.Usage = func() {
		fmt.Fprintf(env.stderr, "Usage: pixcodec %s %s\n\nFlags:\n", name, usage)
		flags.PrintDefaults()
	}
	return flags, configPath
}

// parse parses args and reports whether the command should continue.
func parse(flags *pflag.FlagSet, args []string) (bool, error) {
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return false, nil
		}
		return false, &usageError{msg: err.Error()}
	}
	return true, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runVersion(env *cliEnv, _ []string) error {
	fmt.Fprintln(env.stdout, version.Full("pixcodec"))
	return nil
}
