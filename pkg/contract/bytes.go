package contract

import (
	"bytes"
	"fmt"
)

// Widths of the fixed-size byte arguments used by the envoi contracts.
const (
	NameWidth      = 256
	TextKeyWidth   = 22
	ShortNameWidth = 32
)

// FixedBytes right-pads value with zero bytes to width. Values longer than
// width are rejected.
func FixedBytes(value string, width int) ([]byte, error) {
	if len(value) > width {
		return nil, fmt.Errorf("value of %d bytes exceeds width %d", len(value), width)
	}
	out := make([]byte, width)
	copy(out, value)
	return out, nil
}

// TrimZeroBytes drops trailing zero bytes.
func TrimZeroBytes(value []byte) []byte {
	return bytes.TrimRight(value, "\x00")
}

// FixedString decodes a zero-padded string.
func FixedString(value []byte) string {
	return string(TrimZeroBytes(value))
}
