package wire

import (
	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/codec"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/record"
)

type guardianJSON struct {
	GuardianID          string        `json:"guardian_id"`
	SequenceOrder       int           `json:"sequence_order"`
	ElectionPublicKey   codec.Token   `json:"election_public_key"`
	ElectionCommitments []codec.Token `json:"election_commitments"`
	ElectionProofs      []schnorrJSON `json:"election_proofs"`
}

type schnorrJSON struct {
	PublicKey  codec.Token `json:"public_key"`
	Commitment codec.Token `json:"commitment"`
	Challenge  codec.Token `json:"challenge"`
	Response   codec.Token `json:"response"`
}

// DecodeGuardian reads the public record of a guardian. The election public
// key, when given, must be the first commitment.
func DecodeGuardian(c *codec.Codec, data []byte) (record.Guardian, error) {
	var gj guardianJSON
	if err := unmarshal(data, &gj); err != nil {
		return record.Guardian{}, err
	}
	if err := required("guardian_id", gj.GuardianID); err != nil {
		return record.Guardian{}, err
	}
	g := record.Guardian{
		GuardianID:  gj.GuardianID,
		XCoordinate: gj.SequenceOrder,
	}
	for i, t := range gj.ElectionCommitments {
		e, err := c.ModP(index("election_commitments", i), t)
		if err != nil {
			return record.Guardian{}, err
		}
		g.CoefficientCommitments = append(g.CoefficientCommitments, e)
	}
	for i, pj := range gj.ElectionProofs {
		field := index("election_proofs", i)
		var p record.SchnorrProof
		var err error
		if p.Challenge, err = c.ModQ("challenge", pj.Challenge); err != nil {
			return record.Guardian{}, egrecord.At(field, err)
		}
		if p.Response, err = c.ModQ("response", pj.Response); err != nil {
			return record.Guardian{}, egrecord.At(field, err)
		}
		g.CoefficientProofs = append(g.CoefficientProofs, p)
	}
	key, err := c.OptionalModP("election_public_key", gj.ElectionPublicKey)
	if err != nil {
		return record.Guardian{}, err
	}
	if key.IsValid() && !key.Equal(g.PublicKey()) {
		return record.Guardian{}, mismatch("election_public_key",
			"key of guardian %s is not its first commitment", g.GuardianID)
	}
	return g, nil
}

// EncodeGuardian writes the public record of a guardian. The public key and
// the commitment of each proof are left out; a verifier derives them.
func EncodeGuardian(c *codec.Codec, g record.Guardian) ([]byte, error) {
	gj := guardianJSON{
		GuardianID:          g.GuardianID,
		SequenceOrder:       g.XCoordinate,
		ElectionPublicKey:   c.EncodeModP(g.PublicKey()),
		ElectionCommitments: []codec.Token{},
		ElectionProofs:      []schnorrJSON{},
	}
	for _, e := range g.CoefficientCommitments {
		gj.ElectionCommitments = append(gj.ElectionCommitments, c.EncodeModP(e))
	}
	for _, p := range g.CoefficientProofs {
		gj.ElectionProofs = append(gj.ElectionProofs, schnorrJSON{
			Challenge: c.EncodeModQ(p.Challenge),
			Response:  c.EncodeModQ(p.Response),
		})
	}
	return marshal(gj)
}

type coefficientsJSON struct {
	Coefficients map[string]codec.Token `json:"coefficients"`
}

// DecodeCoefficients reads the Lagrange coefficients of the decrypting
// guardians.
func DecodeCoefficients(c *codec.Codec, data []byte) (record.LagrangeCoefficients, error) {
	var cj coefficientsJSON
	if err := unmarshal(data, &cj); err != nil {
		return record.LagrangeCoefficients{}, err
	}
	lc := record.LagrangeCoefficients{Coefficients: make(map[string]group.ElementModQ)}
	for _, id := range sortedKeys(cj.Coefficients) {
		e, err := c.ModQ(item("coefficients", id), cj.Coefficients[id])
		if err != nil {
			return record.LagrangeCoefficients{}, err
		}
		lc.Coefficients[id] = e
	}
	return lc, nil
}

// EncodeCoefficients writes the Lagrange coefficients.
func EncodeCoefficients(c *codec.Codec, lc record.LagrangeCoefficients) ([]byte, error) {
	cj := coefficientsJSON{Coefficients: make(map[string]codec.Token)}
	for id, e := range lc.Coefficients {
		cj.Coefficients[id] = c.EncodeModQ(e)
	}
	return marshal(cj)
}

type decryptingGuardianJSON struct {
	GuardianID         string      `json:"guardian_id"`
	Sequence           int         `json:"sequence"`
	LagrangeCoordinate codec.Token `json:"lagrangeCoordinate"`
}

// DecodeDecryptingGuardian reads a decrypting guardian written on its own.
func DecodeDecryptingGuardian(c *codec.Codec, data []byte) (record.DecryptingGuardian, error) {
	var dj decryptingGuardianJSON
	if err := unmarshal(data, &dj); err != nil {
		return record.DecryptingGuardian{}, err
	}
	if err := required("guardian_id", dj.GuardianID); err != nil {
		return record.DecryptingGuardian{}, err
	}
	coeff, err := c.ModQ("lagrangeCoordinate", dj.LagrangeCoordinate)
	if err != nil {
		return record.DecryptingGuardian{}, err
	}
	return record.DecryptingGuardian{
		GuardianID:          dj.GuardianID,
		XCoordinate:         dj.Sequence,
		LagrangeCoefficient: coeff,
	}, nil
}

// EncodeDecryptingGuardian writes a decrypting guardian on its own.
func EncodeDecryptingGuardian(c *codec.Codec, dg record.DecryptingGuardian) ([]byte, error) {
	return marshal(decryptingGuardianJSON{
		GuardianID:         dg.GuardianID,
		Sequence:           dg.XCoordinate,
		LagrangeCoordinate: c.EncodeModQ(dg.LagrangeCoefficient),
	})
}

// JoinDecryptingGuardians pairs every coefficient with the guardian of the
// same id. A coefficient without a guardian is an error; guardians without
// a coefficient did not take part in the decryption and are left out. The
// result is sorted by guardian id.
func JoinDecryptingGuardians(guardians []record.Guardian, lc record.LagrangeCoefficients) ([]record.DecryptingGuardian, error) {
	byID := make(map[string]record.Guardian, len(guardians))
	for _, g := range guardians {
		byID[g.GuardianID] = g
	}
	var dgs []record.DecryptingGuardian
	for _, id := range lc.GuardianIDs() {
		g, ok := byID[id]
		if !ok {
			return nil, mismatch(item("coefficients", id), "no guardian with id %s", id)
		}
		dgs = append(dgs, record.DecryptingGuardian{
			GuardianID:          id,
			XCoordinate:         g.XCoordinate,
			LagrangeCoefficient: lc.Coefficients[id],
		})
	}
	return dgs, nil
}
