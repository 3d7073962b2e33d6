package decoder

import "fmt"

// LittleEndian assembles up to four bytes, least significant first, into an
// unsigned integer. encoding/binary has no 24-bit accessor, so the event
// counter goes through here as well.
func LittleEndian(b []byte) (uint32, error) {
	if len(b) == 0 || len(b) > 4 {
		return 0, fmt.Errorf("little-endian field must be 1-4 bytes, got %d", len(b))
	}
	var value uint32
	for i := len(b) - 1; i >= 0; i-- {
		value = value<<8 | uint32(b[i])
	}
	return value, nil
}

// LowNibble returns the lower four bits of a byte.
func LowNibble(b byte) byte {
	return b & 0x0F
}
