package group

import "math/big"

// NewTestContext returns a small context for tests: q is the 256-bit prime
// 2^256 - 189 used by published records, so digests validate the same way
// they do in production, and p = q * 2^256 + 1 keeps elements mod p at 64
// bytes. The parameters are not fit for encryption.
func NewTestContext() *Context {
	q := new(big.Int).Lsh(big.NewInt(1), 256)
	q.Sub(q, big.NewInt(189))
	r := new(big.Int).Lsh(big.NewInt(1), 256)
	p := new(big.Int).Mul(q, r)
	p.Add(p, big.NewInt(1))
	c, err := NewContext("test", p, q, r, big.NewInt(4))
	if err != nil {
		panic(err)
	}
	return c
}
