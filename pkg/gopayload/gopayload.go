package gopayload

import (
	"encoding/json"
	"fmt"

	"github.com/d21d3q/gopayload/internal/decoder"
	"github.com/d21d3q/gopayload/internal/format"
	"github.com/d21d3q/gopayload/internal/frame"
)

type (
	// Input is a payload given either as raw bytes or as hex text.
	Input = frame.Input
	// Reading is the decoded occupancy sensor frame.
	Reading = decoder.Reading
	// LengthError carries the expected and actual hex length.
	LengthError = frame.LengthError
	// HexError points at the first non-hex character.
	HexError = frame.HexError
)

var (
	ErrInvalidLength = frame.ErrInvalidLength
	ErrInvalidHex    = frame.ErrInvalidHex
	ErrInvalidLayout = decoder.ErrInvalidLayout
)

// FromBytes wraps a raw byte payload.
func FromBytes(b []byte) Input { return frame.FromBytes(b) }

// FromHex wraps a hex payload, optionally prefixed with "0x".
func FromHex(s string) Input { return frame.FromHex(s) }

// Result captures the outcome of Decode.
type Result struct {
	Input     string
	RawHex    string
	ByteCount int
	Reading   Reading
	Fields    map[string]any
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"input":      r.Input,
		"byte_count": r.ByteCount,
		"raw_hex":    r.RawHex,
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("input: %s bytes:%d raw:%s (marshal error: %v)", r.Input, r.ByteCount, r.RawHex, err)
	}
	return string(data)
}

// Normalize converts the input to hex text without validating it.
func Normalize(in Input) string {
	return frame.Normalize(in)
}

// Decode normalizes and decodes the payload with the default layout.
func Decode(in Input) (Result, error) {
	return DecodeWithOptions(in, DecodeOptions{})
}

// DecodeHex decodes a hex payload with the default layout.
func DecodeHex(s string) (Result, error) {
	return Decode(FromHex(s))
}

// DecodeBytes decodes a raw payload with the default layout.
func DecodeBytes(b []byte) (Result, error) {
	return Decode(FromBytes(b))
}

// DecodeWithOptions normalizes and decodes the payload with custom options.
// Callers decoding many payloads with the same options should build a
// Decoder once instead.
func DecodeWithOptions(in Input, opts DecodeOptions) (Result, error) {
	d, err := NewDecoder(opts)
	if err != nil {
		return Result{}, err
	}
	return d.Decode(in)
}

// Decoder decodes payloads with options parsed once. It is safe for
// concurrent use.
type Decoder struct {
	dec *decoder.Decoder
}

// NewDecoder parses and validates opts.
func NewDecoder(opts DecodeOptions) (*Decoder, error) {
	layout, err := opts.toInternal()
	if err != nil {
		return nil, err
	}
	dec, err := decoder.New(layout)
	if err != nil {
		return nil, err
	}
	return &Decoder{dec: dec}, nil
}

// Decode normalizes and decodes one payload.
func (d *Decoder) Decode(in Input) (Result, error) {
	f, err := frame.Parse(frame.Normalize(in))
	if err != nil {
		return Result{}, err
	}
	reading, err := d.dec.FromFrame(f)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Input:     in.Kind().String(),
		RawHex:    f.String(),
		ByteCount: frame.Size,
		Reading:   reading,
		Fields:    format.Fields(reading),
	}, nil
}
