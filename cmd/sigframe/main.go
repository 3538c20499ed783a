// Command sigframe decodes and measures captured signals.
//
// Usage:
//
//	sigframe decode [flags] <capture.jsonl[.zst|.s2|.lz4]>
//	sigframe measure [flags] <capture.jsonl[.zst|.s2|.lz4]>
//
// Examples:
//
//	# Merge UART characters into messages, with settings from a file
//	sigframe decode -decoder text -config uart.toml -flush uart.jsonl
//
//	# Frame I2C transactions into a compressed output file
//	sigframe decode -decoder bus -o frames.jsonl.zst i2c.jsonl.zst
//
//	# Decode gyroscope register reads
//	sigframe decode -decoder gyro i2c.jsonl
//
//	# Edge statistics and RMS voltage
//	sigframe measure -m frequency_avg,period_std_dev,voltage_rms scope.jsonl
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

var version = "dev"

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "decode":
		return runDecode(args[1:], stdout, stderr)
	case "measure":
		return runMeasure(args[1:], stdout, stderr)
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "sigframe %s\n", version)
		return exitOK
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "sigframe - decode and measure captured signals\n\n")
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  sigframe decode [flags] <capture>\n")
	fmt.Fprintf(w, "  sigframe measure [flags] <capture>\n")
	fmt.Fprintf(w, "  sigframe version\n\n")
	fmt.Fprintf(w, "Run 'sigframe <command> -h' for command flags.\n")
}

// newLogger builds the stderr text logger shared by the commands. Every
// record carries the run_id of this invocation.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	return slog.New(handler).With("run_id", newRunID())
}

// newRunID returns a time-ordered identifier for one invocation.
func newRunID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
