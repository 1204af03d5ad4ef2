package group

import (
	"encoding/hex"
	"math/big"

	"go.dedis.ch/kyber/v3/group/mod"
)

// ElementModP is a residue mod p. The zero value is not an element, it
// stands for an absent one; see IsValid.
type ElementModP struct {
	v *mod.Int
}

// ElementModQ is a residue mod q. The zero value is not an element, it
// stands for an absent one; see IsValid.
type ElementModQ struct {
	v *mod.Int
}

func newResidue(v, modulus *big.Int) *mod.Int {
	return mod.NewInt(new(big.Int).Set(v), modulus)
}

// fixedBytes returns the big-endian form of the residue, padded to the
// width of its modulus.
func fixedBytes(i *mod.Int) []byte {
	b, err := i.MarshalBinary()
	if err != nil {
		// Only the little-endian path of mod.Int can fail.
		panic(err)
	}
	return b
}

// IsValid tells whether e holds a value.
func (e ElementModP) IsValid() bool {
	return e.v != nil
}

// Big returns a copy of the value.
func (e ElementModP) Big() *big.Int {
	return new(big.Int).Set(&e.v.V)
}

// Bytes returns the value in big-endian order, as wide as p.
func (e ElementModP) Bytes() []byte {
	return fixedBytes(e.v)
}

// Equal compares two elements. Two absent elements are equal.
func (e ElementModP) Equal(o ElementModP) bool {
	if e.v == nil || o.v == nil {
		return e.v == o.v
	}
	return e.v.M.Cmp(o.v.M) == 0 && e.v.Equal(o.v)
}

// String returns the lowercase hexadecimal fixed-width form.
func (e ElementModP) String() string {
	if e.v == nil {
		return "<nil>"
	}
	return hex.EncodeToString(e.Bytes())
}

// IsValid tells whether e holds a value.
func (e ElementModQ) IsValid() bool {
	return e.v != nil
}

// Big returns a copy of the value.
func (e ElementModQ) Big() *big.Int {
	return new(big.Int).Set(&e.v.V)
}

// Bytes returns the value in big-endian order, as wide as q.
func (e ElementModQ) Bytes() []byte {
	return fixedBytes(e.v)
}

// Equal compares two elements. Two absent elements are equal.
func (e ElementModQ) Equal(o ElementModQ) bool {
	if e.v == nil || o.v == nil {
		return e.v == o.v
	}
	return e.v.M.Cmp(o.v.M) == 0 && e.v.Equal(o.v)
}

// String returns the lowercase hexadecimal fixed-width form.
func (e ElementModQ) String() string {
	if e.v == nil {
		return "<nil>"
	}
	return hex.EncodeToString(e.Bytes())
}

// Digest narrows the element to a 256-bit digest. It fails if the value
// needs more than 32 bytes.
func (e ElementModQ) Digest() (UInt256, bool) {
	var d UInt256
	b := e.v.V.Bytes()
	if len(b) > len(d) {
		return d, false
	}
	copy(d[len(d)-len(b):], b)
	return d, true
}
