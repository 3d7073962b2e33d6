package frame

import (
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// Size is the fixed length of a telemetry frame in bytes.
const Size = 8

// HexLen is the length of a normalized frame in hex characters.
const HexLen = Size * 2

// Frame is the raw 8-byte payload emitted by the end device.
type Frame [Size]byte

// Kind tags the variant carried by an Input.
type Kind int

const (
	// HexText is textual hex, optionally prefixed with "0x".
	HexText Kind = iota
	// RawBytes is a byte sequence taken as-is.
	RawBytes
)

func (k Kind) String() string {
	switch k {
	case RawBytes:
		return "bytes"
	default:
		return "hex"
	}
}

// Input is a payload as handed over by a caller: either raw bytes or hex text.
type Input struct {
	kind Kind
	raw  []byte
	text string
}

// FromBytes wraps a byte sequence. The slice is copied.
func FromBytes(b []byte) Input {
	buf := make([]byte, len(b))
	copy(buf, b)
	return Input{kind: RawBytes, raw: buf}
}

// FromHex wraps hex text.
func FromHex(s string) Input {
	return Input{kind: HexText, text: s}
}

// Kind reports which variant the input carries.
func (in Input) Kind() Kind { return in.kind }

// Normalize converts the input to hex text. Bytes become lowercase hex, a
// leading "0x" is stripped from text and anything else is returned unchanged.
// Malformed text is left for Parse to reject.
func Normalize(in Input) string {
	if in.kind == RawBytes {
		return hex.EncodeToString(in.raw)
	}
	return strings.TrimPrefix(in.text, "0x")
}

// Parse validates normalized hex text and returns the frame it encodes.
// Length is counted in characters, so multi-byte text is a length error
// rather than a hex error.
func Parse(hexText string) (Frame, error) {
	var f Frame
	if n := utf8.RuneCountInString(hexText); n != HexLen {
		return f, &LengthError{Expected: HexLen, Actual: n}
	}
	i := 0
	for _, r := range hexText {
		v, ok := nibble(r)
		if !ok {
			return Frame{}, &HexError{Offset: i, Char: r}
		}
		f[i/2] = f[i/2]<<4 | v
		i++
	}
	return f, nil
}

// String returns the lowercase hex form of the frame.
func (f Frame) String() string {
	return hex.EncodeToString(f[:])
}

func nibble(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}
