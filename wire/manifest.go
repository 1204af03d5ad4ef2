package wire

import (
	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/codec"
	"go.dedis.ch/egrecord/hashtree"
	"go.dedis.ch/egrecord/record"
)

type manifestJSON struct {
	ElectionScopeID    string          `json:"election_scope_id"`
	SpecVersion        *string         `json:"spec_version"`
	Type               codec.Token     `json:"type"`
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	GeopoliticalUnits  []unitJSON      `json:"geopolitical_units"`
	Parties            []partyJSON     `json:"parties"`
	Candidates         []candidateJSON `json:"candidates"`
	Contests           []contestJSON   `json:"contests"`
	BallotStyles       []styleJSON     `json:"ballot_styles"`
	Name               *textJSON       `json:"name"`
	ContactInformation *contactJSON    `json:"contact_information"`
}

type textJSON struct {
	Text []languageJSON `json:"text"`
}

type languageJSON struct {
	Value    string `json:"value"`
	Language string `json:"language"`
}

type contactJSON struct {
	AddressLine []string        `json:"address_line"`
	Email       []annotatedJSON `json:"email"`
	Phone       []annotatedJSON `json:"phone"`
	Name        *string         `json:"name"`
}

type annotatedJSON struct {
	Annotation string `json:"annotation"`
	Value      string `json:"value"`
}

type unitJSON struct {
	ObjectID           string       `json:"object_id"`
	Name               string       `json:"name"`
	Type               codec.Token  `json:"type"`
	ContactInformation *contactJSON `json:"contact_information"`
}

type partyJSON struct {
	ObjectID     string    `json:"object_id"`
	Name         *textJSON `json:"name"`
	Abbreviation *string   `json:"abbreviation"`
	Color        *string   `json:"color"`
	LogoURI      *string   `json:"logo_uri"`
}

type candidateJSON struct {
	ObjectID  string      `json:"object_id"`
	Name      *textJSON   `json:"name"`
	PartyID   *string     `json:"party_id"`
	ImageURI  *string     `json:"image_uri"`
	IsWriteIn codec.Token `json:"is_write_in"`
}

type contestJSON struct {
	ObjectID            string          `json:"object_id"`
	ElectoralDistrictID string          `json:"electoral_district_id"`
	SequenceOrder       int             `json:"sequence_order"`
	VoteVariation       codec.Token     `json:"vote_variation"`
	NumberElected       int             `json:"number_elected"`
	VotesAllowed        *int            `json:"votes_allowed"`
	Name                string          `json:"name"`
	BallotSelections    []selectionJSON `json:"ballot_selections"`
	BallotTitle         *textJSON       `json:"ballot_title"`
	BallotSubtitle      *textJSON       `json:"ballot_subtitle"`
	PrimaryPartyIDs     []string        `json:"primary_party_ids"`
}

type selectionJSON struct {
	ObjectID      string `json:"object_id"`
	CandidateID   string `json:"candidate_id"`
	SequenceOrder int    `json:"sequence_order"`
}

type styleJSON struct {
	ObjectID            string   `json:"object_id"`
	GeopoliticalUnitIDs []string `json:"geopolitical_unit_ids"`
	PartyIDs            []string `json:"party_ids"`
	ImageURI            *string  `json:"image_uri"`
}

// DecodeManifest reads a manifest and computes all of its hashes.
func DecodeManifest(c *codec.Codec, data []byte) (record.Manifest, error) {
	var mj manifestJSON
	if err := unmarshal(data, &mj); err != nil {
		return record.Manifest{}, err
	}
	m, err := mj.decode()
	if err != nil {
		return record.Manifest{}, err
	}
	hashtree.Seal(&m)
	return m, nil
}

func (mj manifestJSON) decode() (m record.Manifest, err error) {
	if err = required("election_scope_id", mj.ElectionScopeID); err != nil {
		return
	}
	m.ElectionScopeID = mj.ElectionScopeID
	m.SpecVersion = deref(mj.SpecVersion)
	if m.Type, err = codec.ElectionType("type", mj.Type); err != nil {
		return
	}
	m.StartDate = mj.StartDate
	m.EndDate = mj.EndDate
	m.Name = mj.Name.decode()
	if m.ContactInformation, err = mj.ContactInformation.decode(); err != nil {
		return m, egrecord.At("contact_information", err)
	}
	seen := objectIDs{}
	for i, uj := range mj.GeopoliticalUnits {
		u, err := uj.decode()
		if err != nil {
			return m, egrecord.At(index("geopolitical_units", i), err)
		}
		if err := seen.add("geopolitical_units", u.ObjectID); err != nil {
			return m, err
		}
		m.GeopoliticalUnits = append(m.GeopoliticalUnits, u)
	}
	seen = objectIDs{}
	for i, pj := range mj.Parties {
		if err = required("object_id", pj.ObjectID); err != nil {
			return m, egrecord.At(index("parties", i), err)
		}
		if err = seen.add("parties", pj.ObjectID); err != nil {
			return m, err
		}
		m.Parties = append(m.Parties, record.Party{
			ObjectID:     pj.ObjectID,
			Name:         pj.Name.decode(),
			Abbreviation: deref(pj.Abbreviation),
			Color:        deref(pj.Color),
			LogoURI:      deref(pj.LogoURI),
		})
	}
	seen = objectIDs{}
	for i, cj := range mj.Candidates {
		field := index("candidates", i)
		if err = required("object_id", cj.ObjectID); err != nil {
			return m, egrecord.At(field, err)
		}
		if err = seen.add("candidates", cj.ObjectID); err != nil {
			return m, err
		}
		wi, err := codec.Bool("is_write_in", cj.IsWriteIn)
		if err != nil {
			return m, egrecord.At(field, err)
		}
		m.Candidates = append(m.Candidates, record.Candidate{
			ObjectID:  cj.ObjectID,
			Name:      cj.Name.decode(),
			PartyID:   deref(cj.PartyID),
			ImageURI:  deref(cj.ImageURI),
			IsWriteIn: wi,
		})
	}
	seen = objectIDs{}
	for _, cj := range mj.Contests {
		cd, err := cj.decode()
		if err != nil {
			return m, egrecord.At(item("contests", cj.ObjectID), err)
		}
		if err := seen.add("contests", cd.ObjectID); err != nil {
			return m, err
		}
		m.Contests = append(m.Contests, cd)
	}
	seen = objectIDs{}
	for i, sj := range mj.BallotStyles {
		if err = required("object_id", sj.ObjectID); err != nil {
			return m, egrecord.At(index("ballot_styles", i), err)
		}
		if err = seen.add("ballot_styles", sj.ObjectID); err != nil {
			return m, err
		}
		m.BallotStyles = append(m.BallotStyles, record.BallotStyle{
			ObjectID:            sj.ObjectID,
			GeopoliticalUnitIDs: nilStrings(sj.GeopoliticalUnitIDs),
			PartyIDs:            nilStrings(sj.PartyIDs),
			ImageURI:            deref(sj.ImageURI),
		})
	}
	return m, nil
}

func (tj *textJSON) decode() record.InternationalizedText {
	var t record.InternationalizedText
	if tj == nil {
		return t
	}
	for _, lj := range tj.Text {
		t.Text = append(t.Text, record.Language{Value: lj.Value, Language: lj.Language})
	}
	return t
}

func (cj *contactJSON) decode() (*record.ContactInformation, error) {
	if cj == nil {
		return nil, nil
	}
	ci := &record.ContactInformation{
		AddressLine: nilStrings(cj.AddressLine),
		Name:        deref(cj.Name),
	}
	for _, aj := range cj.Email {
		ci.Email = append(ci.Email, record.AnnotatedString{Annotation: aj.Annotation, Value: aj.Value})
	}
	for _, aj := range cj.Phone {
		ci.Phone = append(ci.Phone, record.AnnotatedString{Annotation: aj.Annotation, Value: aj.Value})
	}
	return ci, nil
}

func (uj unitJSON) decode() (u record.GeopoliticalUnit, err error) {
	if err = required("object_id", uj.ObjectID); err != nil {
		return
	}
	u.ObjectID = uj.ObjectID
	u.Name = uj.Name
	if u.Type, err = codec.ReportingUnitType("type", uj.Type); err != nil {
		return
	}
	u.ContactInformation, err = uj.ContactInformation.decode()
	return u, egrecord.At("contact_information", err)
}

func (cj contestJSON) decode() (cd record.ContestDescription, err error) {
	if err = required("object_id", cj.ObjectID); err != nil {
		return
	}
	cd.ObjectID = cj.ObjectID
	cd.SequenceOrder = cj.SequenceOrder
	cd.ElectoralDistrictID = cj.ElectoralDistrictID
	if cd.VoteVariation, err = codec.VoteVariation("vote_variation", cj.VoteVariation); err != nil {
		return
	}
	cd.NumberElected = cj.NumberElected
	cd.VotesAllowed = cj.NumberElected
	if cj.VotesAllowed != nil {
		cd.VotesAllowed = *cj.VotesAllowed
	}
	cd.Name = cj.Name
	seen := objectIDs{}
	for i, sj := range cj.BallotSelections {
		if err = required("object_id", sj.ObjectID); err != nil {
			return cd, egrecord.At(index("ballot_selections", i), err)
		}
		if err = seen.add("ballot_selections", sj.ObjectID); err != nil {
			return cd, err
		}
		cd.Selections = append(cd.Selections, record.SelectionDescription{
			ObjectID:      sj.ObjectID,
			SequenceOrder: sj.SequenceOrder,
			CandidateID:   sj.CandidateID,
		})
	}
	cd.BallotTitle = cj.BallotTitle.decode()
	cd.BallotSubtitle = cj.BallotSubtitle.decode()
	cd.PrimaryPartyIDs = nilStrings(cj.PrimaryPartyIDs)
	return cd, nil
}

// EncodeManifest writes a manifest. The hashes are not part of the
// document.
func EncodeManifest(c *codec.Codec, m record.Manifest) ([]byte, error) {
	mj := manifestJSON{
		ElectionScopeID:    m.ElectionScopeID,
		SpecVersion:        optString(m.SpecVersion),
		Type:               codec.String(string(m.Type)),
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		GeopoliticalUnits:  []unitJSON{},
		Parties:            []partyJSON{},
		Candidates:         []candidateJSON{},
		Contests:           []contestJSON{},
		BallotStyles:       []styleJSON{},
		Name:               encodeText(m.Name),
		ContactInformation: encodeContact(m.ContactInformation),
	}
	for _, u := range m.GeopoliticalUnits {
		mj.GeopoliticalUnits = append(mj.GeopoliticalUnits, unitJSON{
			ObjectID:           u.ObjectID,
			Name:               u.Name,
			Type:               codec.String(string(u.Type)),
			ContactInformation: encodeContact(u.ContactInformation),
		})
	}
	for _, p := range m.Parties {
		mj.Parties = append(mj.Parties, partyJSON{
			ObjectID:     p.ObjectID,
			Name:         encodeText(p.Name),
			Abbreviation: optString(p.Abbreviation),
			Color:        optString(p.Color),
			LogoURI:      optString(p.LogoURI),
		})
	}
	for _, cand := range m.Candidates {
		mj.Candidates = append(mj.Candidates, candidateJSON{
			ObjectID:  cand.ObjectID,
			Name:      encodeText(cand.Name),
			PartyID:   optString(cand.PartyID),
			ImageURI:  optString(cand.ImageURI),
			IsWriteIn: codec.EncodeBool(cand.IsWriteIn),
		})
	}
	for _, cd := range m.Contests {
		votes := cd.VotesAllowed
		cj := contestJSON{
			ObjectID:            cd.ObjectID,
			ElectoralDistrictID: cd.ElectoralDistrictID,
			SequenceOrder:       cd.SequenceOrder,
			VoteVariation:       codec.String(string(cd.VoteVariation)),
			NumberElected:       cd.NumberElected,
			VotesAllowed:        &votes,
			Name:                cd.Name,
			BallotSelections:    []selectionJSON{},
			BallotTitle:         encodeText(cd.BallotTitle),
			BallotSubtitle:      encodeText(cd.BallotSubtitle),
			PrimaryPartyIDs:     emptyStrings(cd.PrimaryPartyIDs),
		}
		for _, s := range cd.Selections {
			cj.BallotSelections = append(cj.BallotSelections, selectionJSON{
				ObjectID:      s.ObjectID,
				CandidateID:   s.CandidateID,
				SequenceOrder: s.SequenceOrder,
			})
		}
		mj.Contests = append(mj.Contests, cj)
	}
	for _, s := range m.BallotStyles {
		mj.BallotStyles = append(mj.BallotStyles, styleJSON{
			ObjectID:            s.ObjectID,
			GeopoliticalUnitIDs: emptyStrings(s.GeopoliticalUnitIDs),
			PartyIDs:            emptyStrings(s.PartyIDs),
			ImageURI:            optString(s.ImageURI),
		})
	}
	return marshal(mj)
}

func encodeText(t record.InternationalizedText) *textJSON {
	if len(t.Text) == 0 {
		return nil
	}
	tj := &textJSON{}
	for _, l := range t.Text {
		tj.Text = append(tj.Text, languageJSON{Value: l.Value, Language: l.Language})
	}
	return tj
}

func encodeContact(ci *record.ContactInformation) *contactJSON {
	if ci == nil {
		return nil
	}
	cj := &contactJSON{
		AddressLine: emptyStrings(ci.AddressLine),
		Email:       []annotatedJSON{},
		Phone:       []annotatedJSON{},
		Name:        optString(ci.Name),
	}
	for _, a := range ci.Email {
		cj.Email = append(cj.Email, annotatedJSON{Annotation: a.Annotation, Value: a.Value})
	}
	for _, a := range ci.Phone {
		cj.Phone = append(cj.Phone, annotatedJSON{Annotation: a.Annotation, Value: a.Value})
	}
	return cj
}
