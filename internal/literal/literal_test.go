package literal

import (
	"errors"
	"testing"

	"github.com/d21d3q/gopayload/internal/frame"
)

func TestParseBytesLiteral(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{`b'\x01\x03\xe8\n\x00\x00\x00\x00'`, "0103e80a00000000"},
		{`b"\x01\x03\xE8\x0a\x00\x00\x00\x00"`, "0103e80a00000000"},
		{`  B'\x01AB'  `, "014142"},
		{`b'\\\'\"'`, "5c2722"},
		{`b'\t\r\0'`, "090d00"},
		{`b''`, ""},
	}
	for _, tc := range cases {
		in, err := Parse(tc.line)
		if err != nil {
			t.Fatalf("Parse(%s): %v", tc.line, err)
		}
		if in.Kind() != frame.RawBytes {
			t.Fatalf("Parse(%s): expected raw bytes, got %v", tc.line, in.Kind())
		}
		if got := frame.Normalize(in); got != tc.want {
			t.Fatalf("Parse(%s) = %s, want %s", tc.line, got, tc.want)
		}
	}
}

func TestParseBytesLiteralErrors(t *testing.T) {
	bad := []string{
		`b'\x01`,
		`b'\x0'`,
		`b'\xZZ'`,
		`b'\q'`,
		`b'abc\'`,
		`b'a'b'`,
		"b'é'",
	}
	for _, line := range bad {
		if _, err := Parse(line); !errors.Is(err, ErrSyntax) {
			t.Fatalf("Parse(%s): expected ErrSyntax, got %v", line, err)
		}
	}
}

func TestParseHexText(t *testing.T) {
	in, err := Parse(" 0x0103E80A_0000|0000 ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if in.Kind() != frame.HexText {
		t.Fatalf("expected hex text, got %v", in.Kind())
	}
	if got := frame.Normalize(in); got != "0103E80A00000000" {
		t.Fatalf("unexpected normalized text: %s", got)
	}
}

func TestParseNeverEvaluates(t *testing.T) {
	in, err := Parse(`__import__('os').system('true')`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if in.Kind() != frame.HexText {
		t.Fatalf("expected text to stay text, got %v", in.Kind())
	}
	if _, err := frame.Parse(frame.Normalize(in)); err == nil {
		t.Fatalf("expected code-like text to be rejected by the frame parser")
	}
}
