package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/d21d3q/gopayload/internal/format"
	"github.com/d21d3q/gopayload/internal/literal"
	"github.com/d21d3q/gopayload/pkg/gopayload"
)

func newRootCmd() *cobra.Command {
	flags := defaultFlags()
	cmd := &cobra.Command{
		Use:   "gopayload-decode [payload]",
		Short: "Decode occupancy sensor telemetry frames",
		Long: `gopayload-decode decodes 8-byte occupancy sensor frames into status, battery,
temperature, time and event count. A payload is hex text (optionally 0x
prefixed) or a bytes literal such as b'\x01\x03\xe8\n\x00\x00\x00\x00'.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			switch {
			case flags.file != "":
				return runBatchFile(ctx, cfg, flags.file, cmd.InOrStdin(), out)
			case len(args) == 0:
				return runInteractive(ctx, cfg, cmd.InOrStdin(), out)
			default:
				return runDecode(cfg, args[0], cfg.newWriter(out))
			}
		},
	}
	flags.register(cmd)
	return cmd
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func runInteractive(ctx context.Context, cfg config, in io.Reader, out io.Writer) error {
	w := cfg.newWriter(out)
	scanner := bufio.NewScanner(in)
	logrus.Info("gopayload decode mode. Paste a payload and press Enter (Ctrl+D to exit).")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runDecode(cfg, line, w); err != nil {
			logrus.WithError(err).Error("failed to decode payload")
		}
	}
	return scanner.Err()
}

// runDecode decodes one line and flushes it through w, which may be shared
// across lines so a CSV header is written only once.
func runDecode(cfg config, line string, w *format.Writer) error {
	result, err := decodeLine(cfg, line)
	if err != nil {
		return err
	}
	if err := w.Write(result.Reading); err != nil {
		return err
	}
	return w.Flush()
}

func runBatchFile(ctx context.Context, cfg config, path string, stdin io.Reader, out io.Writer) error {
	if path == "-" {
		return runBatch(ctx, cfg, stdin, out)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open payload file: %w", err)
	}
	defer f.Close()
	return runBatch(ctx, cfg, f, out)
}

// runBatch decodes one payload per line. Blank lines and lines starting with
// '#' are skipped; failing lines are logged and reported in the final error.
func runBatch(ctx context.Context, cfg config, in io.Reader, out io.Writer) error {
	w := cfg.newWriter(out)
	scanner := bufio.NewScanner(in)
	lineNo, total, failed := 0, 0, 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		total++
		result, err := decodeLine(cfg, line)
		if err != nil {
			failed++
			logrus.WithError(err).WithField("line", lineNo).Error("failed to decode payload")
			continue
		}
		if err := w.Write(result.Reading); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read payloads: %w", err)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"decoded": total - failed, "failed": failed}).Debug("batch finished")
	if failed > 0 {
		return fmt.Errorf("%d of %d payloads failed to decode", failed, total)
	}
	return nil
}

func decodeLine(cfg config, line string) (gopayload.Result, error) {
	in, err := literal.Parse(line)
	if err != nil {
		return gopayload.Result{}, err
	}
	result, err := cfg.decoder.Decode(in)
	if err != nil {
		return gopayload.Result{}, err
	}
	logrus.WithFields(logrus.Fields{"input": result.Input, "raw_hex": result.RawHex}).Debug("decoded payload")
	return result, nil
}
