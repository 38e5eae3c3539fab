// Package main is the entry point for the hexed editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/hexed/internal/app"
	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	// The editor owns the whole terminal; refuse to start into a pipe.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "interactive tool, needs a TTY")
		return 1
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	terminal, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(terminal); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var bigEndian, littleEndian, showVersion bool

	flag.StringVar(&opts.DataFormat, "data-format", "", "Data panel format: hex, decimal, octal, or binary")
	flag.StringVar(&opts.TextFormat, "text-format", "", "Text panel charset: ascii or ebcdic")
	flag.StringVar(&opts.OffsetFormat, "offset-format", "", "Offset column format: hex or decimal")
	flag.BoolVar(&bigEndian, "big-endian", false, "Interpret inspector numbers big endian")
	flag.BoolVar(&littleEndian, "little-endian", false, "Interpret inspector numbers little endian")
	flag.IntVar(&opts.RecordSize, "rec-size", 0, "Fixed record size; each row shows one record")
	flag.BoolVar(&opts.Mailbag, "mailbag", false, "Mailbag mode: decode ASCII-hex epoch timestamps")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Open the file without write-back")
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to the configuration file")
	flag.BoolVar(&opts.Debug, "debug", false, "Verbose logging and the diagnostics dialog")
	flag.BoolVar(&showVersion, "version", false, "Print version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "hexed - a terminal hex editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: hexed [flags] FILE\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  hexed core.bin                  Edit a file\n")
		fmt.Fprintf(os.Stderr, "  hexed -readonly core.bin        Inspect without write-back\n")
		fmt.Fprintf(os.Stderr, "  hexed -data-format octal a.out  Start in octal\n")
		fmt.Fprintf(os.Stderr, "  hexed -mailbag -rec-size 80 mb  Mailbag records, 80 bytes per row\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("hexed %s\n", version.Full())
		os.Exit(0)
	}

	if bigEndian && littleEndian {
		fmt.Fprintln(os.Stderr, "Error: -big-endian and -little-endian are mutually exclusive")
		os.Exit(1)
	}
	if bigEndian {
		opts.Endian = "big"
	}
	if littleEndian {
		opts.Endian = "little"
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	opts.File = flag.Arg(0)

	return opts
}
