// Package fixture builds a small but complete election record for tests.
package fixture

import (
	"math/big"

	"go.dedis.ch/egrecord/consumer"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/hashtree"
	"go.dedis.ch/egrecord/record"
)

type builder struct {
	g *group.Context
}

func (b builder) p(v int64) group.ElementModP {
	e, err := b.g.ElementModP(big.NewInt(v))
	if err != nil {
		panic(err)
	}
	return e
}

func (b builder) q(v int64) group.ElementModQ {
	e, err := b.g.ElementModQ(big.NewInt(v))
	if err != nil {
		panic(err)
	}
	return e
}

func (b builder) ciphertext(v int64) record.ElGamalCiphertext {
	return record.ElGamalCiphertext{Pad: b.p(v), Data: b.p(v + 1)}
}

func (b builder) proof(v int64) record.ChaumPedersenProof {
	return record.ChaumPedersenProof{Challenge: b.q(v), Response: b.q(v + 1)}
}

// Manifest returns a sealed manifest with one contest of two selections.
func Manifest() record.Manifest {
	text := func(s string) record.InternationalizedText {
		return record.InternationalizedText{Text: []record.Language{{Value: s, Language: "en"}}}
	}
	m := record.Manifest{
		ElectionScopeID: "fixture-election",
		SpecVersion:     "v0.95",
		Type:            record.ElectionGeneral,
		StartDate:       "2021-11-02T07:00:00-05:00",
		EndDate:         "2021-11-02T20:00:00-05:00",
		Name:            text("Fixture Election"),
		GeopoliticalUnits: []record.GeopoliticalUnit{
			{ObjectID: "district-1", Name: "District 1", Type: "county"},
		},
		Parties: []record.Party{{ObjectID: "party-1", Name: text("Party One")}},
		Candidates: []record.Candidate{
			{ObjectID: "alice", Name: text("Alice"), PartyID: "party-1"},
			{ObjectID: "bob", Name: text("Bob")},
		},
		Contests: []record.ContestDescription{{
			ObjectID:            "mayor",
			ElectoralDistrictID: "district-1",
			VoteVariation:       record.VariationOneOfM,
			NumberElected:       1,
			VotesAllowed:        1,
			Name:                "Mayor",
			Selections: []record.SelectionDescription{
				{ObjectID: "alice-selection", SequenceOrder: 0, CandidateID: "alice"},
				{ObjectID: "bob-selection", SequenceOrder: 1, CandidateID: "bob"},
			},
		}},
		BallotStyles: []record.BallotStyle{
			{ObjectID: "style-1", GeopoliticalUnitIDs: []string{"district-1"}},
		},
	}
	hashtree.Seal(&m)
	return m
}

// Guardian returns the public record of guardian number x.
func Guardian(g *group.Context, id string, x int) record.Guardian {
	b := builder{g}
	return record.Guardian{
		GuardianID:             id,
		XCoordinate:            x,
		CoefficientCommitments: []group.ElementModP{b.p(int64(10 * x)), b.p(int64(10*x + 1))},
		CoefficientProofs: []record.SchnorrProof{
			{Challenge: b.q(1), Response: b.q(2)},
			{Challenge: b.q(3), Response: b.q(4)},
		},
	}
}

// EncryptedBallot returns a ballot of the fixture manifest in the given
// state.
func EncryptedBallot(g *group.Context, id string, state record.BallotState) record.EncryptedBallot {
	b := builder{g}
	m := Manifest()
	contest := m.Contests[0]
	var sels []record.EncryptedBallotSelection
	for i, s := range contest.Selections {
		sels = append(sels, record.EncryptedBallotSelection{
			SelectionID:     s.ObjectID,
			SequenceOrder:   s.SequenceOrder,
			DescriptionHash: s.CryptoHash,
			Ciphertext:      b.ciphertext(int64(100 + 2*i)),
			CryptoHash:      hashtree.Hash(hashtree.String(id), hashtree.String(s.ObjectID)),
			Proof: record.DisjunctiveChaumPedersenProof{
				Proof0:    b.proof(1),
				Proof1:    b.proof(3),
				Challenge: b.q(4),
			},
		})
	}
	return record.EncryptedBallot{
		BallotID:     id,
		StyleID:      "style-1",
		ManifestHash: m.CryptoHash,
		CodeSeed:     hashtree.Hash(hashtree.String("seed")),
		Code:         hashtree.Hash(hashtree.String(id)),
		Timestamp:    1635854400,
		CryptoHash:   hashtree.Hash(hashtree.String(id), hashtree.Int(int(state))),
		State:        state,
		Contests: []record.EncryptedBallotContest{{
			ContestID:       contest.ObjectID,
			SequenceOrder:   contest.SequenceOrder,
			DescriptionHash: contest.CryptoHash,
			Selections:      sels,
			CryptoHash:      hashtree.Hash(hashtree.String(id), hashtree.String(contest.ObjectID)),
			Proof:           record.ConstantChaumPedersenProof{Proof: b.proof(5), Constant: 1},
		}},
	}
}

// PlaintextTally returns a decrypted tally of the fixture manifest, with a
// direct share from G2 and G3 and a share of G1 recovered by them.
func PlaintextTally(g *group.Context, id string) record.PlaintextTally {
	b := builder{g}
	m := Manifest()
	contest := m.Contests[0]
	tc := record.PlaintextTallyContest{
		ContestID:  contest.ObjectID,
		Selections: make(map[string]record.PlaintextTallySelection),
	}
	for i, s := range contest.Selections {
		proof2, proof3 := b.proof(6), b.proof(8)
		tc.Selections[s.ObjectID] = record.PlaintextTallySelection{
			SelectionID: s.ObjectID,
			Tally:       i + 1,
			Value:       b.p(int64(16 << uint(i))),
			Message:     b.ciphertext(int64(200 + 2*i)),
			Shares: []record.PartialDecryption{
				{
					SelectionID: s.ObjectID,
					GuardianID:  "G1",
					Share:       b.p(31),
					RecoveredParts: map[string]record.RecoveredPartialDecryption{
						"G2": {DecryptingGuardianID: "G2", MissingGuardianID: "G1", Share: b.p(32),
							RecoveryKey: b.p(33), Proof: b.proof(10)},
						"G3": {DecryptingGuardianID: "G3", MissingGuardianID: "G1", Share: b.p(34),
							RecoveryKey: b.p(35), Proof: b.proof(12)},
					},
				},
				{SelectionID: s.ObjectID, GuardianID: "G2", Share: b.p(36), Proof: &proof2},
				{SelectionID: s.ObjectID, GuardianID: "G3", Share: b.p(37), Proof: &proof3},
			},
		}
	}
	return record.PlaintextTally{
		TallyID:  id,
		Contests: map[string]record.PlaintextTallyContest{contest.ObjectID: tc},
	}
}

// EncryptedTally returns the encrypted tally of the fixture manifest.
func EncryptedTally(g *group.Context) record.EncryptedTally {
	b := builder{g}
	m := Manifest()
	contest := m.Contests[0]
	tc := record.EncryptedTallyContest{
		ContestID:       contest.ObjectID,
		SequenceOrder:   contest.SequenceOrder,
		DescriptionHash: contest.CryptoHash,
	}
	for i, s := range contest.Selections {
		tc.Selections = append(tc.Selections, record.EncryptedTallySelection{
			SelectionID:     s.ObjectID,
			SequenceOrder:   s.SequenceOrder,
			DescriptionHash: s.CryptoHash,
			Ciphertext:      b.ciphertext(int64(200 + 2*i)),
		})
	}
	return record.EncryptedTally{TallyID: "election-tally", Contests: []record.EncryptedTallyContest{tc}}
}

// Record returns a complete record at the decrypted stage: three guardians
// of which G2 and G3 decrypted, two devices, one cast and one spoiled
// ballot and one invalid ballot.
func Record(g *group.Context) *consumer.Record {
	b := builder{g}
	m := Manifest()
	k := g.Constants(group.FromWire)
	ec := record.ElectionContext{
		NumberOfGuardians:      3,
		Quorum:                 2,
		ElGamalPublicKey:       b.p(1000),
		ManifestHash:           m.CryptoHash,
		CryptoBaseHash:         hashtree.Hash(hashtree.String("base")),
		CryptoExtendedBaseHash: hashtree.Hash(hashtree.String("extended")),
		CommitmentHash:         hashtree.Hash(hashtree.String("commitments")),
	}
	et := EncryptedTally(g)
	dt := PlaintextTally(g, "election-tally")
	vote := "write-in"
	return &consumer.Record{
		Stage:     consumer.StageDecrypted,
		Manifest:  m,
		Constants: &k,
		Context:   &ec,
		Guardians: []record.Guardian{
			Guardian(g, "G1", 1), Guardian(g, "G2", 2), Guardian(g, "G3", 3),
		},
		Devices: []record.EncryptionDevice{
			{DeviceID: 1, SessionID: 7, LaunchCode: 42, Location: "polling-place-1"},
			{DeviceID: 2, SessionID: 7, LaunchCode: 42, Location: "polling-place-2"},
		},
		DecryptingGuardians: []record.DecryptingGuardian{
			{GuardianID: "G2", XCoordinate: 2, LagrangeCoefficient: b.q(2)},
			{GuardianID: "G3", XCoordinate: 3, LagrangeCoefficient: b.q(5)},
		},
		SubmittedBallots: []record.EncryptedBallot{
			EncryptedBallot(g, "ballot-1", record.BallotCast),
			EncryptedBallot(g, "ballot-2", record.BallotSpoiled),
		},
		SpoiledBallots: []record.PlaintextTally{PlaintextTally(g, "ballot-2")},
		InvalidBallots: []record.PlaintextBallot{{
			BallotID: "ballot-3",
			StyleID:  "style-1",
			Contests: []record.PlaintextBallotContest{{
				ContestID: "mayor",
				Selections: []record.PlaintextBallotSelection{
					{SelectionID: "alice-selection", Vote: 1},
					{SelectionID: "bob-selection", SequenceOrder: 1, Vote: 1, ExtendedData: &vote},
				},
			}},
		}},
		EncryptedTally: &et,
		DecryptedTally: &dt,
	}
}
