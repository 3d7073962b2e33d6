package frame

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLength = errors.New("invalid payload length")
	ErrInvalidHex    = errors.New("invalid hex character")
)

// LengthError reports a normalized payload of the wrong size.
type LengthError struct {
	Expected int
	Actual   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%v: expected %d hex characters (%d bytes), got %d characters", ErrInvalidLength, e.Expected, e.Expected/2, e.Actual)
}

func (e *LengthError) Is(target error) bool { return target == ErrInvalidLength }

// HexError reports the first character that is not a hex digit. Offset
// counts characters, not bytes.
type HexError struct {
	Offset int
	Char   rune
}

func (e *HexError) Error() string {
	return fmt.Sprintf("%v %q at offset %d", ErrInvalidHex, e.Char, e.Offset)
}

func (e *HexError) Is(target error) bool { return target == ErrInvalidHex }
