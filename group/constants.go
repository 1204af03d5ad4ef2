package group

import "math/big"

// Provenance tells where a set of constants was loaded from.
type Provenance int

const (
	// FromConfig marks constants read from a configuration file.
	FromConfig Provenance = iota
	// FromWire marks constants read from the JSON record. They have not been
	// through the group membership checks the binary form gets.
	FromWire
	// FromBinary marks constants read from the binary record.
	FromBinary
)

func (p Provenance) String() string {
	switch p {
	case FromConfig:
		return "config"
	case FromWire:
		return "from Json"
	case FromBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Constants are the published group parameters of an election. The
// integers are unbounded and not reduced by anything.
type Constants struct {
	Name       string
	LargePrime *big.Int
	SmallPrime *big.Int
	Cofactor   *big.Int
	Generator  *big.Int
	Source     Provenance
}

// Equal compares the four integers and the name. The provenance is not
// part of the comparison.
func (c Constants) Equal(o Constants) bool {
	return c.Name == o.Name &&
		bigEqual(c.LargePrime, o.LargePrime) &&
		bigEqual(c.SmallPrime, o.SmallPrime) &&
		bigEqual(c.Cofactor, o.Cofactor) &&
		bigEqual(c.Generator, o.Generator)
}

func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}
