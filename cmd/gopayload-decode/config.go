package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/d21d3q/gopayload/internal/format"
	internalopts "github.com/d21d3q/gopayload/internal/options"
	"github.com/d21d3q/gopayload/pkg/gopayload"
)

const (
	envFormat   = "GOPAYLOAD_FORMAT"
	envLogLevel = "GOPAYLOAD_LOG_LEVEL"
)

type cliFlags struct {
	format   string
	header   bool
	file     string
	layout   string
	logLevel string
	logJSON  bool
}

// config is the validated form of cliFlags.
type config struct {
	format  format.Format
	header  bool
	decoder *gopayload.Decoder
}

func defaultFlags() *cliFlags {
	return &cliFlags{
		format:   envOr(envFormat, string(format.CSV)),
		logLevel: envOr(envLogLevel, "info"),
	}
}

func (f *cliFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.format, "format", f.format, "output format: csv or json (env "+envFormat+")")
	pf.BoolVar(&f.header, "header", false, "print a CSV header row")
	pf.StringVar(&f.file, "file", "", "decode one payload per line from this file ('-' for stdin)")
	pf.StringVar(&f.layout, "layout", "", "field offset overrides, e.g. time=4,events=0")
	pf.StringVar(&f.logLevel, "log-level", f.logLevel, "log level (env "+envLogLevel+")")
	pf.BoolVar(&f.logJSON, "log-json", false, "log as JSON")
}

func (f *cliFlags) config() (config, error) {
	outFormat, err := internalopts.ParseFormat(f.format)
	if err != nil {
		return config{}, err
	}
	dec, err := gopayload.NewDecoder(gopayload.DecodeOptions{Layout: f.layout})
	if err != nil {
		return config{}, err
	}
	return config{format: outFormat, header: f.header, decoder: dec}, nil
}

func (c config) newWriter(out io.Writer) *format.Writer {
	if c.header {
		return format.NewWriter(out, c.format, format.WithHeader())
	}
	return format.NewWriter(out, c.format)
}

func setupLogging(f *cliFlags) error {
	level, err := logrus.ParseLevel(strings.TrimSpace(f.logLevel))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", f.logLevel, err)
	}
	logrus.SetLevel(level)
	if f.logJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
