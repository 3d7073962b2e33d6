package format

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/d21d3q/gopayload/internal/decoder"
)

// Format selects how readings are rendered.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// Column titles used for the CSV header and as JSON keys.
const (
	KeyStatus      = "Status"
	KeyBattery     = "Battery (V)"
	KeyTemperature = "Temperature (°C)"
	KeyTime        = "Time (minutes)"
	KeyEventCount  = "Event Count"
)

// Keys lists the output columns in order.
var Keys = []string{KeyStatus, KeyBattery, KeyTemperature, KeyTime, KeyEventCount}

// Parse accepts a format name in any case.
func Parse(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (choose csv or json)", s)
	}
}

// Fields returns the reading keyed by column title. Battery stays Volts so
// that any JSON rendering of the map keeps its fractional digit.
func Fields(r decoder.Reading) map[string]any {
	return map[string]any{
		KeyStatus:      r.Status(),
		KeyBattery:     r.BatteryVolts,
		KeyTemperature: r.TemperatureCelsius,
		KeyTime:        int(r.TimeMinutes),
		KeyEventCount:  int(r.EventCount),
	}
}

// Record renders the reading as ordered CSV values.
func Record(r decoder.Reading) []string {
	return []string{
		r.Status(),
		r.BatteryVolts.String(),
		strconv.Itoa(r.TemperatureCelsius),
		strconv.FormatUint(uint64(r.TimeMinutes), 10),
		strconv.FormatUint(uint64(r.EventCount), 10),
	}
}

// MarshalJSON renders one reading as an indented JSON object with the keys
// in column order. Struct tags cannot carry the degree sign, so the object
// is assembled pair by pair.
func MarshalJSON(r decoder.Reading) ([]byte, error) {
	values := []any{r.Status(), r.BatteryVolts, r.TemperatureCelsius, r.TimeMinutes, r.EventCount}
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, key := range Keys {
		k, err := marshalValue(key)
		if err != nil {
			return nil, err
		}
		v, err := marshalValue(values[i])
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
		if i < len(Keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshal reading: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Option configures a Writer.
type Option func(*Writer)

// WithHeader emits the column titles before the first CSV record.
func WithHeader() Option {
	return func(w *Writer) { w.header = true }
}

// Writer streams readings in one format. Call Flush when done.
type Writer struct {
	format Format
	header bool
	wrote  bool
	buf    *bufio.Writer
	csv    *csv.Writer
}

// NewWriter returns a Writer rendering to out.
func NewWriter(out io.Writer, f Format, opts ...Option) *Writer {
	w := &Writer{format: f, buf: bufio.NewWriter(out)}
	for _, opt := range opts {
		opt(w)
	}
	if f == CSV {
		w.csv = csv.NewWriter(w.buf)
	}
	return w
}

// Write renders a single reading.
func (w *Writer) Write(r decoder.Reading) error {
	switch w.format {
	case CSV:
		if w.header && !w.wrote {
			if err := w.csv.Write(Keys); err != nil {
				return fmt.Errorf("write csv header: %w", err)
			}
		}
		if err := w.csv.Write(Record(r)); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	case JSON:
		data, err := MarshalJSON(r)
		if err != nil {
			return err
		}
		if _, err := w.buf.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", w.format)
	}
	w.wrote = true
	return nil
}

// Flush writes any buffered output.
func (w *Writer) Flush() error {
	if w.csv != nil {
		w.csv.Flush()
		if err := w.csv.Error(); err != nil {
			return fmt.Errorf("flush csv: %w", err)
		}
	}
	return w.buf.Flush()
}
