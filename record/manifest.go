// Package record is the in-memory model of an election record. Values are
// built by package wire when a document is read, or by the caller before a
// document is written, and are not modified afterwards.
package record

import "go.dedis.ch/egrecord/group"

// Manifest is the election definition. Every CryptoHash in the tree is
// computed by hashtree.Seal from the other fields, never read from a
// document.
type Manifest struct {
	ElectionScopeID    string
	SpecVersion        string
	Type               ElectionType
	StartDate          string
	EndDate            string
	GeopoliticalUnits  []GeopoliticalUnit
	Parties            []Party
	Candidates         []Candidate
	Contests           []ContestDescription
	BallotStyles       []BallotStyle
	Name               InternationalizedText
	ContactInformation *ContactInformation
	CryptoHash         group.UInt256
}

// GeopoliticalUnit is a district, a precinct or any other area a contest can
// be tied to.
type GeopoliticalUnit struct {
	ObjectID           string
	Name               string
	Type               ReportingUnitType
	ContactInformation *ContactInformation
	CryptoHash         group.UInt256
}

// Party is a political party.
type Party struct {
	ObjectID     string
	Name         InternationalizedText
	Abbreviation string
	Color        string
	LogoURI      string
	CryptoHash   group.UInt256
}

// Candidate is someone, or something, a selection can be made for.
type Candidate struct {
	ObjectID   string
	Name       InternationalizedText
	PartyID    string
	ImageURI   string
	IsWriteIn  bool
	CryptoHash group.UInt256
}

// ContestDescription describes one contest of the ballot.
type ContestDescription struct {
	ObjectID            string
	SequenceOrder       int
	ElectoralDistrictID string
	VoteVariation       VoteVariationType
	NumberElected       int
	// VotesAllowed equals NumberElected when the document leaves it out.
	VotesAllowed    int
	Name            string
	Selections      []SelectionDescription
	BallotTitle     InternationalizedText
	BallotSubtitle  InternationalizedText
	PrimaryPartyIDs []string
	CryptoHash      group.UInt256
}

// SelectionDescription is one option of a contest.
type SelectionDescription struct {
	ObjectID      string
	SequenceOrder int
	CandidateID   string
	CryptoHash    group.UInt256
}

// BallotStyle lists the units and parties a ballot is built for.
type BallotStyle struct {
	ObjectID            string
	GeopoliticalUnitIDs []string
	PartyIDs            []string
	ImageURI            string
	CryptoHash          group.UInt256
}

// InternationalizedText is a text in several languages.
type InternationalizedText struct {
	Text       []Language
	CryptoHash group.UInt256
}

// Language is a text in one language.
type Language struct {
	Value      string
	Language   string
	CryptoHash group.UInt256
}

// ContactInformation of a unit or of the election authority.
type ContactInformation struct {
	AddressLine []string
	Email       []AnnotatedString
	Phone       []AnnotatedString
	Name        string
	CryptoHash  group.UInt256
}

// AnnotatedString is a value with a free-form annotation, like "work" for a
// phone number.
type AnnotatedString struct {
	Annotation string
	Value      string
	CryptoHash group.UInt256
}

// Contest returns the contest description with the given id.
func (m *Manifest) Contest(id string) (*ContestDescription, bool) {
	for i := range m.Contests {
		if m.Contests[i].ObjectID == id {
			return &m.Contests[i], true
		}
	}
	return nil, false
}

// Selection returns the selection description with the given id.
func (c *ContestDescription) Selection(id string) (*SelectionDescription, bool) {
	for i := range c.Selections {
		if c.Selections[i].ObjectID == id {
			return &c.Selections[i], true
		}
	}
	return nil, false
}
