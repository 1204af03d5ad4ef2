package record

import (
	"sort"

	"go.dedis.ch/egrecord/group"
)

// SchnorrProof proves knowledge of the secret behind one commitment. Only
// the challenge and the response are published; the public key and the
// commitment are derived by whoever verifies it.
type SchnorrProof struct {
	Challenge group.ElementModQ
	Response  group.ElementModQ
}

// Guardian is the public record of one guardian.
type Guardian struct {
	GuardianID             string
	XCoordinate            int
	CoefficientCommitments []group.ElementModP
	CoefficientProofs      []SchnorrProof
}

// PublicKey returns the election public key of the guardian, which is the
// commitment to the constant coefficient of its polynomial. The result is
// not valid if there is no commitment.
func (g Guardian) PublicKey() group.ElementModP {
	if len(g.CoefficientCommitments) == 0 {
		return group.ElementModP{}
	}
	return g.CoefficientCommitments[0]
}

// DecryptingGuardian is a guardian that took part in the decryption, with
// its Lagrange coefficient for the set of available guardians.
type DecryptingGuardian struct {
	GuardianID          string
	XCoordinate         int
	LagrangeCoefficient group.ElementModQ
}

// LagrangeCoefficients maps the ids of the decrypting guardians to their
// coefficients.
type LagrangeCoefficients struct {
	Coefficients map[string]group.ElementModQ
}

// GuardianIDs returns the ids of the coefficients in lexical order.
func (l LagrangeCoefficients) GuardianIDs() []string {
	ids := make([]string, 0, len(l.Coefficients))
	for id := range l.Coefficients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
