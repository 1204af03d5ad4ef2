package record

import (
	"sort"

	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/group"
)

// ElGamalCiphertext is an encryption (pad, data) = (g^r, g^m * K^r).
type ElGamalCiphertext struct {
	Pad  group.ElementModP
	Data group.ElementModP
}

// Equal compares both components.
func (c ElGamalCiphertext) Equal(o ElGamalCiphertext) bool {
	return c.Pad.Equal(o.Pad) && c.Data.Equal(o.Data)
}

// ChaumPedersenProof is the (challenge, response) pair of a proof of
// equality of discrete logs.
type ChaumPedersenProof struct {
	Challenge group.ElementModQ
	Response  group.ElementModQ
}

// Equal compares both components.
func (p ChaumPedersenProof) Equal(o ChaumPedersenProof) bool {
	return p.Challenge.Equal(o.Challenge) && p.Response.Equal(o.Response)
}

// EncryptedTally is the homomorphic sum of the cast ballots. Contests are
// ordered by sequence order.
type EncryptedTally struct {
	TallyID  string
	Contests []EncryptedTallyContest
}

// EncryptedTallyContest holds the sums of one contest. Selections are
// ordered by sequence order.
type EncryptedTallyContest struct {
	ContestID       string
	SequenceOrder   int
	DescriptionHash group.UInt256
	Selections      []EncryptedTallySelection
}

// EncryptedTallySelection is the encrypted sum of one selection.
type EncryptedTallySelection struct {
	SelectionID     string
	SequenceOrder   int
	DescriptionHash group.UInt256
	Ciphertext      ElGamalCiphertext
}

// Contest returns the contest with the given id.
func (t *EncryptedTally) Contest(id string) (*EncryptedTallyContest, bool) {
	for i := range t.Contests {
		if t.Contests[i].ContestID == id {
			return &t.Contests[i], true
		}
	}
	return nil, false
}

// Selection returns the selection with the given id.
func (c *EncryptedTallyContest) Selection(id string) (*EncryptedTallySelection, bool) {
	for i := range c.Selections {
		if c.Selections[i].SelectionID == id {
			return &c.Selections[i], true
		}
	}
	return nil, false
}

// SortBySequence orders the contests and their selections by sequence
// order, then by id.
func (t *EncryptedTally) SortBySequence() {
	sort.SliceStable(t.Contests, func(i, j int) bool {
		a, b := t.Contests[i], t.Contests[j]
		if a.SequenceOrder != b.SequenceOrder {
			return a.SequenceOrder < b.SequenceOrder
		}
		return a.ContestID < b.ContestID
	})
	for i := range t.Contests {
		sels := t.Contests[i].Selections
		sort.SliceStable(sels, func(i, j int) bool {
			if sels[i].SequenceOrder != sels[j].SequenceOrder {
				return sels[i].SequenceOrder < sels[j].SequenceOrder
			}
			return sels[i].SelectionID < sels[j].SelectionID
		})
	}
}

// PlaintextTally is a decrypted tally, either of all cast ballots or of a
// single spoiled ballot.
type PlaintextTally struct {
	TallyID  string
	Contests map[string]PlaintextTallyContest
}

// PlaintextTallyContest holds the decrypted selections of one contest.
type PlaintextTallyContest struct {
	ContestID  string
	Selections map[string]PlaintextTallySelection
}

// PlaintextTallySelection is the decrypted count of one selection with the
// shares it was decrypted from.
type PlaintextTallySelection struct {
	SelectionID string
	Tally       int
	// Value is g^Tally.
	Value   group.ElementModP
	Message ElGamalCiphertext
	Shares  []PartialDecryption
}

// ContestIDs returns the contest ids in lexical order. The document has no
// sequence order for decrypted tallies.
func (t PlaintextTally) ContestIDs() []string {
	ids := make([]string, 0, len(t.Contests))
	for id := range t.Contests {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SelectionIDs returns the selection ids in lexical order.
func (c PlaintextTallyContest) SelectionIDs() []string {
	ids := make([]string, 0, len(c.Selections))
	for id := range c.Selections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ShareKind tells how a guardian's share was produced.
type ShareKind int

const (
	// ShareEmpty has neither a proof nor recovered parts.
	ShareEmpty ShareKind = iota
	// ShareDirect was computed by the guardian itself, with a proof.
	ShareDirect
	// ShareRecovered was rebuilt by other guardians for a missing one.
	ShareRecovered
	// ShareAmbiguous has both a proof and recovered parts.
	ShareAmbiguous
)

func (k ShareKind) String() string {
	switch k {
	case ShareDirect:
		return "direct"
	case ShareRecovered:
		return "recovered"
	case ShareAmbiguous:
		return "ambiguous"
	default:
		return "empty"
	}
}

// PartialDecryption is one guardian's share of the decryption of a
// selection. It is either direct, with Proof set, or recovered, with
// RecoveredParts keyed by the id of each guardian that stood in for the
// missing one. Published records are not always that clean: Kind tells
// which one a given share is and Validate refuses the two others.
type PartialDecryption struct {
	SelectionID    string
	GuardianID     string
	Share          group.ElementModP
	Proof          *ChaumPedersenProof
	RecoveredParts map[string]RecoveredPartialDecryption
}

// RecoveredPartialDecryption is the part of a missing guardian's share
// computed by one available guardian.
type RecoveredPartialDecryption struct {
	DecryptingGuardianID string
	MissingGuardianID    string
	Share                group.ElementModP
	RecoveryKey          group.ElementModP
	Proof                ChaumPedersenProof
}

// Kind returns how the share was produced.
func (p PartialDecryption) Kind() ShareKind {
	direct := p.Proof != nil
	recovered := len(p.RecoveredParts) > 0
	switch {
	case direct && recovered:
		return ShareAmbiguous
	case direct:
		return ShareDirect
	case recovered:
		return ShareRecovered
	default:
		return ShareEmpty
	}
}

// Validate fails unless the share is exactly one of direct or recovered.
func (p PartialDecryption) Validate() error {
	switch k := p.Kind(); k {
	case ShareDirect, ShareRecovered:
		return nil
	default:
		return egrecord.NewError(egrecord.ErrInvalidShare, "",
			"share of guardian %s for %s is %s", p.GuardianID, p.SelectionID, k)
	}
}

// RecoveringGuardianIDs returns the keys of the recovered parts in lexical
// order.
func (p PartialDecryption) RecoveringGuardianIDs() []string {
	ids := make([]string, 0, len(p.RecoveredParts))
	for id := range p.RecoveredParts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
