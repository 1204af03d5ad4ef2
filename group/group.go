// Package group holds the parameters of the integer group the election is
// run in, and the residues mod p and mod q that appear in a record.
//
// A Context is built once, is never modified afterwards and can be shared by
// any number of goroutines. There is no package-level default group: the
// caller decides which parameters a record is read with.
package group

import (
	"math/big"

	"golang.org/x/xerrors"
)

// Context is the set of group parameters: the large prime p, the small
// prime q with p = q*r + 1, the cofactor r and the generator g of the
// order-q subgroup.
type Context struct {
	name string
	p    *big.Int
	q    *big.Int
	r    *big.Int
	g    *big.Int
	pLen int
	qLen int
}

// NewContext checks the structural relations between the parameters and
// returns the context. Primality and the order of g are not checked here,
// they belong to the arithmetic library.
func NewContext(name string, p, q, r, g *big.Int) (*Context, error) {
	if p == nil || q == nil || r == nil || g == nil {
		return nil, xerrors.New("all of p, q, r and g must be given")
	}
	one := big.NewInt(1)
	if q.Cmp(one) <= 0 {
		return nil, xerrors.New("q must be larger than 1")
	}
	if p.Cmp(q) <= 0 {
		return nil, xerrors.New("p must be larger than q")
	}
	if r.Sign() <= 0 {
		return nil, xerrors.New("cofactor must be positive")
	}
	qr := new(big.Int).Mul(q, r)
	if qr.Add(qr, one).Cmp(p) != 0 {
		return nil, xerrors.New("p is not q*r + 1")
	}
	if g.Cmp(one) <= 0 || g.Cmp(p) >= 0 {
		return nil, xerrors.New("generator out of range")
	}
	return &Context{
		name: name,
		p:    new(big.Int).Set(p),
		q:    new(big.Int).Set(q),
		r:    new(big.Int).Set(r),
		g:    new(big.Int).Set(g),
		pLen: (p.BitLen() + 7) / 8,
		qLen: (q.BitLen() + 7) / 8,
	}, nil
}

// FromConstants returns the context described by the constants.
func FromConstants(c Constants) (*Context, error) {
	return NewContext(c.Name, c.LargePrime, c.SmallPrime, c.Cofactor, c.Generator)
}

// Name returns the name of the parameter set.
func (c *Context) Name() string {
	return c.name
}

// LargePrime returns a copy of p.
func (c *Context) LargePrime() *big.Int {
	return new(big.Int).Set(c.p)
}

// SmallPrime returns a copy of q.
func (c *Context) SmallPrime() *big.Int {
	return new(big.Int).Set(c.q)
}

// Cofactor returns a copy of r.
func (c *Context) Cofactor() *big.Int {
	return new(big.Int).Set(c.r)
}

// Generator returns a copy of g.
func (c *Context) Generator() *big.Int {
	return new(big.Int).Set(c.g)
}

// ModPLen is the width in bytes of an element mod p.
func (c *Context) ModPLen() int {
	return c.pLen
}

// ModQLen is the width in bytes of an element mod q.
func (c *Context) ModQLen() int {
	return c.qLen
}

// Constants returns the parameters as constants tagged with the given
// provenance.
func (c *Context) Constants(source Provenance) Constants {
	return Constants{
		Name:       c.name,
		LargePrime: c.LargePrime(),
		SmallPrime: c.SmallPrime(),
		Cofactor:   c.Cofactor(),
		Generator:  c.Generator(),
		Source:     source,
	}
}

// ElementModP returns v as an element mod p. Values outside of [0, p) are
// refused rather than reduced.
func (c *Context) ElementModP(v *big.Int) (ElementModP, error) {
	if err := inRange(v, c.p); err != nil {
		return ElementModP{}, err
	}
	return ElementModP{newResidue(v, c.p)}, nil
}

// ElementModQ returns v as an element mod q. Values outside of [0, q) are
// refused rather than reduced.
func (c *Context) ElementModQ(v *big.Int) (ElementModQ, error) {
	if err := inRange(v, c.q); err != nil {
		return ElementModQ{}, err
	}
	return ElementModQ{newResidue(v, c.q)}, nil
}

// ElementModPFromBytes reads a big-endian element mod p.
func (c *Context) ElementModPFromBytes(b []byte) (ElementModP, error) {
	return c.ElementModP(new(big.Int).SetBytes(b))
}

// ElementModQFromBytes reads a big-endian element mod q.
func (c *Context) ElementModQFromBytes(b []byte) (ElementModQ, error) {
	return c.ElementModQ(new(big.Int).SetBytes(b))
}

// ElementModQFromDigest returns the digest as an element mod q, failing if
// the digest is not smaller than q.
func (c *Context) ElementModQFromDigest(d UInt256) (ElementModQ, error) {
	return c.ElementModQFromBytes(d[:])
}

func inRange(v, modulus *big.Int) error {
	if v == nil {
		return xerrors.New("nil value")
	}
	if v.Sign() < 0 {
		return xerrors.New("negative value")
	}
	if v.Cmp(modulus) >= 0 {
		return xerrors.Errorf("value has %d bits, not smaller than the modulus", v.BitLen())
	}
	return nil
}
