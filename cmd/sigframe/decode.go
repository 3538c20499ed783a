package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/sigframe/capture"
	"github.com/arloliu/sigframe/config"
	"github.com/arloliu/sigframe/decoder"
	"github.com/arloliu/sigframe/frame"
	"github.com/arloliu/sigframe/metric"
)

func runDecode(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)

	kind := fs.String("decoder", "text", "decoder: text, bus, gyro")
	cfgPath := fs.String("config", "", "TOML or YAML config file")
	output := fs.String("o", "", "output file, compressed by extension (default: stdout)")
	flush := fs.Bool("flush", false, "emit the frame still pending at end of capture")
	strict := fs.Bool("strict", false, "validate every capture line against the event schema")
	showMetrics := fs.Bool("metrics", false, "print decoder counters in Prometheus text format to stderr")
	verbose := fs.Bool("v", false, "log dropped events at debug level")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sigframe decode [flags] <capture>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: exactly one capture file required\n\n")
		fs.Usage()
		return exitUsage
	}

	log := newLogger(stderr, *verbose)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	reg := prometheus.NewRegistry()
	metrics, err := metric.NewMetrics(reg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	tr, err := newTransducer(*kind, cfg, log, metrics)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	input := fs.Arg(0)
	log.Info("decoding capture", "input", input, "decoder", *kind, "config", cfg.String())

	var buf bytes.Buffer
	sink := stdout
	if *output != "" {
		sink = &buf
	}
	fw := capture.NewFrameWriter(sink)

	if err := decodeFile(input, readerOptions(*strict), tr, fw, *flush); err != nil {
		log.Info("decode failed", "frames", fw.Count(), "err", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if *output != "" {
		if err := capture.SaveFile(*output, buf.Bytes()); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}

	digest := fw.Digest()
	log.Info("decode finished", "frames", digest.Count(), "digest", digest.String())
	fmt.Fprintf(stderr, "frames=%d digest=%s\n", digest.Count(), digest)

	if *showMetrics {
		if err := metric.WriteText(stderr, reg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}

	return exitOK
}

func decodeFile(path string, opts []capture.ReaderOption, tr frame.Transducer, fw *capture.FrameWriter, flush bool) error {
	r, err := capture.Open(path, opts...)
	if err != nil {
		return err
	}

	for ev, err := range r.All() {
		if err != nil {
			return err
		}

		frames, err := tr.Process(ev)
		if err != nil {
			return err
		}
		if err := fw.WriteAll(frames); err != nil {
			return err
		}
	}

	if flush {
		return fw.WriteAll(tr.Flush())
	}

	return nil
}

func newTransducer(kind string, cfg *config.Config, log *slog.Logger, m *metric.Metrics) (frame.Transducer, error) {
	opts := []decoder.Option{decoder.WithLogger(log), decoder.WithRecorder(m)}

	var (
		tr   frame.Transducer
		name string
		err  error
	)
	switch kind {
	case "text":
		tr, err = decoder.NewTextMerger(cfg, opts...)
		name = decoder.TextMergerName
	case "bus":
		tr, err = decoder.NewBusFramer(opts...)
		name = decoder.BusFramerName
	case "gyro":
		tr, err = decoder.NewGyroDecoder(opts...)
		name = decoder.RegisterDecoderName
	default:
		return nil, fmt.Errorf("unknown decoder %q (want text, bus or gyro)", kind)
	}
	if err != nil {
		return nil, err
	}

	return metric.Instrument(name, tr, m), nil
}

func readerOptions(strict bool) []capture.ReaderOption {
	if !strict {
		return nil
	}

	return []capture.ReaderOption{capture.WithStrictSchema()}
}

func loadConfig(path string, extra ...config.Option) (*config.Config, error) {
	if path == "" {
		return config.New(extra...)
	}

	return config.Load(path, extra...)
}
