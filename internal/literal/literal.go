// Package literal turns a line typed at the prompt into a payload input.
//
// Two notations are accepted. A bytes literal such as b'\x01\x03\xe8\n'
// is parsed escape by escape into raw bytes; it is never evaluated. Any
// other text is treated as hex, with the separators people paste from
// gateway logs (spaces, '|' and '_') removed.
package literal

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/d21d3q/gopayload/internal/frame"
)

var ErrSyntax = errors.New("invalid bytes literal")

// Parse classifies and decodes one line of user input.
func Parse(line string) (frame.Input, error) {
	s := strings.TrimSpace(line)
	if isBytesLiteral(s) {
		b, err := parseBytes(s)
		if err != nil {
			return frame.Input{}, err
		}
		return frame.FromBytes(b), nil
	}
	return frame.FromHex(stripSeparators(s)), nil
}

func isBytesLiteral(s string) bool {
	if len(s) < 2 || (s[0] != 'b' && s[0] != 'B') {
		return false
	}
	return s[1] == '"' || s[1] == '\''
}

func parseBytes(s string) ([]byte, error) {
	quote := s[1]
	body := s[2:]
	if len(body) == 0 || body[len(body)-1] != quote {
		return nil, fmt.Errorf("%w: missing closing %c", ErrSyntax, quote)
	}
	body = body[:len(body)-1]

	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		pos := i + 2
		switch {
		case c == quote:
			return nil, fmt.Errorf("%w: unescaped %c at offset %d", ErrSyntax, quote, pos)
		case c >= 0x80:
			return nil, fmt.Errorf("%w: non-ASCII character at offset %d", ErrSyntax, pos)
		case c != '\\':
			out = append(out, c)
			continue
		}
		if i+1 >= len(body) {
			return nil, fmt.Errorf("%w: dangling backslash at offset %d", ErrSyntax, pos)
		}
		i++
		switch esc := body[i]; esc {
		case 'x':
			if i+2 >= len(body) {
				return nil, fmt.Errorf("%w: truncated \\x escape at offset %d", ErrSyntax, pos)
			}
			hi, okHi := hexValue(body[i+1])
			lo, okLo := hexValue(body[i+2])
			if !okHi || !okLo {
				return nil, fmt.Errorf("%w: bad \\x escape %q at offset %d", ErrSyntax, body[i-1:i+3], pos)
			}
			out = append(out, hi<<4|lo)
			i += 2
		case '\\', '\'', '"':
			out = append(out, esc)
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '0':
			out = append(out, 0)
		case 'a':
			out = append(out, '\a')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'v':
			out = append(out, '\v')
		default:
			return nil, fmt.Errorf("%w: unknown escape \\%c at offset %d", ErrSyntax, esc, pos)
		}
	}
	return out, nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func stripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
