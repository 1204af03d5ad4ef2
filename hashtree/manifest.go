package hashtree

import (
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/record"
)

// Seal computes every hash of the manifest, leaves first, and stores them
// in the CryptoHash fields. It returns the hash of the manifest.
func Seal(m *record.Manifest) group.UInt256 {
	sealText(&m.Name)
	if m.ContactInformation != nil {
		sealContact(m.ContactInformation)
	}
	units := make([]Element, len(m.GeopoliticalUnits))
	for i := range m.GeopoliticalUnits {
		units[i] = Digest(sealUnit(&m.GeopoliticalUnits[i]))
	}
	parties := make([]Element, len(m.Parties))
	for i := range m.Parties {
		parties[i] = Digest(sealParty(&m.Parties[i]))
	}
	candidates := make([]Element, len(m.Candidates))
	for i := range m.Candidates {
		candidates[i] = Digest(sealCandidate(&m.Candidates[i]))
	}
	contests := make([]Element, len(m.Contests))
	for i := range m.Contests {
		contests[i] = Digest(sealContest(&m.Contests[i]))
	}
	styles := make([]Element, len(m.BallotStyles))
	for i := range m.BallotStyles {
		styles[i] = Digest(sealStyle(&m.BallotStyles[i]))
	}

	m.CryptoHash = Hash(
		String(m.ElectionScopeID),
		String(m.SpecVersion),
		String(string(m.Type)),
		String(m.StartDate),
		String(m.EndDate),
		Digest(m.Name.CryptoHash),
		contact(m.ContactInformation),
		Seq(units...),
		Seq(parties...),
		Seq(candidates...),
		Seq(contests...),
		Seq(styles...),
	)
	return m.CryptoHash
}

func contact(c *record.ContactInformation) Element {
	if c == nil {
		return Absent()
	}
	return Digest(c.CryptoHash)
}

func sealText(t *record.InternationalizedText) group.UInt256 {
	langs := make([]Element, len(t.Text))
	for i := range t.Text {
		l := &t.Text[i]
		l.CryptoHash = Hash(String(l.Value), String(l.Language))
		langs[i] = Digest(l.CryptoHash)
	}
	t.CryptoHash = Hash(Seq(langs...))
	return t.CryptoHash
}

func sealAnnotated(list []record.AnnotatedString) Element {
	elems := make([]Element, len(list))
	for i := range list {
		a := &list[i]
		a.CryptoHash = Hash(String(a.Annotation), String(a.Value))
		elems[i] = Digest(a.CryptoHash)
	}
	return Seq(elems...)
}

func sealContact(c *record.ContactInformation) group.UInt256 {
	c.CryptoHash = Hash(
		Strings(c.AddressLine),
		sealAnnotated(c.Email),
		sealAnnotated(c.Phone),
		String(c.Name),
	)
	return c.CryptoHash
}

func sealUnit(u *record.GeopoliticalUnit) group.UInt256 {
	if u.ContactInformation != nil {
		sealContact(u.ContactInformation)
	}
	u.CryptoHash = Hash(
		String(u.ObjectID),
		String(u.Name),
		String(string(u.Type)),
		contact(u.ContactInformation),
	)
	return u.CryptoHash
}

func sealParty(p *record.Party) group.UInt256 {
	p.CryptoHash = Hash(
		String(p.ObjectID),
		Digest(sealText(&p.Name)),
		String(p.Abbreviation),
		String(p.Color),
		String(p.LogoURI),
	)
	return p.CryptoHash
}

func sealCandidate(c *record.Candidate) group.UInt256 {
	c.CryptoHash = Hash(
		String(c.ObjectID),
		Digest(sealText(&c.Name)),
		String(c.PartyID),
		String(c.ImageURI),
		Bool(c.IsWriteIn),
	)
	return c.CryptoHash
}

func sealStyle(s *record.BallotStyle) group.UInt256 {
	s.CryptoHash = Hash(
		String(s.ObjectID),
		Strings(s.GeopoliticalUnitIDs),
		Strings(s.PartyIDs),
		String(s.ImageURI),
	)
	return s.CryptoHash
}

func sealContest(c *record.ContestDescription) group.UInt256 {
	sels := make([]Element, len(c.Selections))
	for i := range c.Selections {
		s := &c.Selections[i]
		s.CryptoHash = Hash(String(s.ObjectID), Int(s.SequenceOrder), String(s.CandidateID))
		sels[i] = Digest(s.CryptoHash)
	}
	c.CryptoHash = Hash(
		String(c.ObjectID),
		Int(c.SequenceOrder),
		String(c.ElectoralDistrictID),
		String(string(c.VoteVariation)),
		Digest(sealText(&c.BallotTitle)),
		Digest(sealText(&c.BallotSubtitle)),
		String(c.Name),
		Int(c.NumberElected),
		Int(c.VotesAllowed),
		Seq(sels...),
		Strings(c.PrimaryPartyIDs),
	)
	return c.CryptoHash
}
