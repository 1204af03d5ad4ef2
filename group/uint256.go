package group

import (
	"encoding/hex"
	"strings"
)

// UInt256 is a 256-bit digest, big-endian.
type UInt256 [32]byte

// String returns the lowercase hexadecimal form.
func (u UInt256) String() string {
	return hex.EncodeToString(u[:])
}

// CryptoHashString is the form a digest takes when it is itself the input
// of a hash: uppercase hexadecimal.
func (u UInt256) CryptoHashString() string {
	return strings.ToUpper(hex.EncodeToString(u[:]))
}

// IsZero tells whether all bits are zero.
func (u UInt256) IsZero() bool {
	return u == UInt256{}
}
