// Storycore is a deterministic, data-driven interpreter for text
// adventures. Catalogs are authored in Lua or YAML.
// Usage: storycore [--version] [--plain] [--script <file>] [--trace] <catalog_directory>
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nathoo/storycore/cli"
	"github.com/nathoo/storycore/engine"
	"github.com/nathoo/storycore/loader"
	"github.com/nathoo/storycore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	plain := flag.Bool("plain", false, "use the plain CLI instead of the TUI")
	trace := flag.Bool("trace", false, "log parse and dispatch traces to stderr")
	scriptFile := flag.String("script", "", "play back a command script (implies --plain)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("storycore %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: storycore [--version] [--plain] [--script <file>] [--trace] <catalog_directory>\n")
		os.Exit(1)
	}
	catalogDir := flag.Arg(0)

	cfg, err := loader.Load(catalogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	var opts []engine.Option
	if *trace {
		opts = append(opts, engine.WithLogger(traceLogger()))
	}
	eng := engine.New(cfg, opts...)

	// Script mode: open file, force plain, echo commands.
	if *scriptFile != "" {
		f, err := os.Open(*scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if *plain || !isTerminal() {
		cli.New(eng).Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// traceLogger builds a debug-level console logger on stderr.
func traceLogger() *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(ec),
		zapcore.Lock(os.Stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
