package wire

import (
	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/codec"
	"go.dedis.ch/egrecord/record"
)

type ciphertextJSON struct {
	Pad  codec.Token `json:"pad"`
	Data codec.Token `json:"data"`
}

func (cj ciphertextJSON) decode(c *codec.Codec) (ct record.ElGamalCiphertext, err error) {
	if ct.Pad, err = c.ModP("pad", cj.Pad); err != nil {
		return
	}
	ct.Data, err = c.ModP("data", cj.Data)
	return
}

func encodeCiphertext(c *codec.Codec, ct record.ElGamalCiphertext) ciphertextJSON {
	return ciphertextJSON{Pad: c.EncodeModP(ct.Pad), Data: c.EncodeModP(ct.Data)}
}

// proofJSON is a Chaum-Pedersen proof. The commitments pad and data are
// never published.
type proofJSON struct {
	Pad       codec.Token `json:"pad"`
	Data      codec.Token `json:"data"`
	Challenge codec.Token `json:"challenge"`
	Response  codec.Token `json:"response"`
}

func (pj proofJSON) decode(c *codec.Codec) (p record.ChaumPedersenProof, err error) {
	if p.Challenge, err = c.ModQ("challenge", pj.Challenge); err != nil {
		return
	}
	p.Response, err = c.ModQ("response", pj.Response)
	return
}

func encodeProof(c *codec.Codec, p record.ChaumPedersenProof) proofJSON {
	return proofJSON{Challenge: c.EncodeModQ(p.Challenge), Response: c.EncodeModQ(p.Response)}
}

type encryptedTallyJSON struct {
	ObjectID string                      `json:"object_id"`
	Contests map[string]tallyContestJSON `json:"contests"`
}

type tallyContestJSON struct {
	ObjectID        string                        `json:"object_id"`
	SequenceOrder   int                           `json:"sequence_order"`
	DescriptionHash codec.Token                   `json:"description_hash"`
	Selections      map[string]tallySelectionJSON `json:"selections"`
}

type tallySelectionJSON struct {
	ObjectID        string         `json:"object_id"`
	SequenceOrder   int            `json:"sequence_order"`
	DescriptionHash codec.Token    `json:"description_hash"`
	Ciphertext      ciphertextJSON `json:"ciphertext"`
}

// DecodeEncryptedTally reads an encrypted tally. Contests and selections
// are ordered by sequence order.
func DecodeEncryptedTally(c *codec.Codec, data []byte) (record.EncryptedTally, error) {
	var tj encryptedTallyJSON
	if err := unmarshal(data, &tj); err != nil {
		return record.EncryptedTally{}, err
	}
	if err := required("object_id", tj.ObjectID); err != nil {
		return record.EncryptedTally{}, err
	}
	t := record.EncryptedTally{TallyID: tj.ObjectID}
	for _, id := range sortedKeys(tj.Contests) {
		contest, err := tj.Contests[id].decode(c, id)
		if err != nil {
			return record.EncryptedTally{}, egrecord.At(item("contests", id), err)
		}
		t.Contests = append(t.Contests, contest)
	}
	t.SortBySequence()
	return t, nil
}

func (cj tallyContestJSON) decode(c *codec.Codec, key string) (tc record.EncryptedTallyContest, err error) {
	if cj.ObjectID != key {
		return tc, mismatch("object_id", "contest %q under key %q", cj.ObjectID, key)
	}
	tc.ContestID = cj.ObjectID
	tc.SequenceOrder = cj.SequenceOrder
	if tc.DescriptionHash, err = c.Digest("description_hash", cj.DescriptionHash); err != nil {
		return
	}
	for _, id := range sortedKeys(cj.Selections) {
		sj := cj.Selections[id]
		field := item("selections", id)
		if sj.ObjectID != id {
			return tc, egrecord.At(field, mismatch("object_id", "selection %q under key %q", sj.ObjectID, id))
		}
		s := record.EncryptedTallySelection{SelectionID: sj.ObjectID, SequenceOrder: sj.SequenceOrder}
		if s.DescriptionHash, err = c.Digest("description_hash", sj.DescriptionHash); err != nil {
			return tc, egrecord.At(field, err)
		}
		if s.Ciphertext, err = sj.Ciphertext.decode(c); err != nil {
			return tc, egrecord.At(field+".ciphertext", err)
		}
		tc.Selections = append(tc.Selections, s)
	}
	return tc, nil
}

// EncodeEncryptedTally writes an encrypted tally. Map keys are the ids of
// the contests and selections.
func EncodeEncryptedTally(c *codec.Codec, t record.EncryptedTally) ([]byte, error) {
	tj := encryptedTallyJSON{
		ObjectID: t.TallyID,
		Contests: make(map[string]tallyContestJSON),
	}
	for _, tc := range t.Contests {
		cj := tallyContestJSON{
			ObjectID:        tc.ContestID,
			SequenceOrder:   tc.SequenceOrder,
			DescriptionHash: c.EncodeDigest(tc.DescriptionHash),
			Selections:      make(map[string]tallySelectionJSON),
		}
		for _, s := range tc.Selections {
			cj.Selections[s.SelectionID] = tallySelectionJSON{
				ObjectID:        s.SelectionID,
				SequenceOrder:   s.SequenceOrder,
				DescriptionHash: c.EncodeDigest(s.DescriptionHash),
				Ciphertext:      encodeCiphertext(c, s.Ciphertext),
			}
		}
		tj.Contests[tc.ContestID] = cj
	}
	return marshal(tj)
}

type plaintextTallyJSON struct {
	ObjectID string                          `json:"object_id"`
	Contests map[string]plaintextContestJSON `json:"contests"`
}

type plaintextContestJSON struct {
	ObjectID   string                            `json:"object_id"`
	Selections map[string]plaintextSelectionJSON `json:"selections"`
}

type plaintextSelectionJSON struct {
	ObjectID string         `json:"object_id"`
	Tally    int            `json:"tally"`
	Value    codec.Token    `json:"value"`
	Message  ciphertextJSON `json:"message"`
	Shares   []shareJSON    `json:"shares"`
}

type shareJSON struct {
	ObjectID       string                   `json:"object_id"`
	GuardianID     string                   `json:"guardian_id"`
	Share          codec.Token              `json:"share"`
	Proof          *proofJSON               `json:"proof"`
	RecoveredParts map[string]recoveredJSON `json:"recovered_parts"`
}

type recoveredJSON struct {
	ObjectID          string      `json:"object_id"`
	GuardianID        string      `json:"guardian_id"`
	MissingGuardianID string      `json:"missing_guardian_id"`
	Share             codec.Token `json:"share"`
	RecoveryKey       codec.Token `json:"recovery_key"`
	Proof             proofJSON   `json:"proof"`
}

// DecodePlaintextTally reads a decrypted tally, of all cast ballots or of a
// single spoiled ballot.
func DecodePlaintextTally(c *codec.Codec, data []byte) (record.PlaintextTally, error) {
	var tj plaintextTallyJSON
	if err := unmarshal(data, &tj); err != nil {
		return record.PlaintextTally{}, err
	}
	if err := required("object_id", tj.ObjectID); err != nil {
		return record.PlaintextTally{}, err
	}
	t := record.PlaintextTally{
		TallyID:  tj.ObjectID,
		Contests: make(map[string]record.PlaintextTallyContest),
	}
	contests := sortedKeys(tj.Contests)
	for _, id := range contests {
		if cj := tj.Contests[id]; cj.ObjectID != id {
			return record.PlaintextTally{}, egrecord.At(item("contests", id),
				mismatch("object_id", "contest %q under key %q", cj.ObjectID, id))
		}
	}
	for _, id := range contests {
		cj := tj.Contests[id]
		contest := record.PlaintextTallyContest{
			ContestID:  id,
			Selections: make(map[string]record.PlaintextTallySelection),
		}
		for _, sid := range sortedKeys(cj.Selections) {
			s, err := cj.Selections[sid].decode(c, sid)
			if err != nil {
				return record.PlaintextTally{}, egrecord.At(item("contests", id),
					egrecord.At(item("selections", sid), err))
			}
			contest.Selections[sid] = s
		}
		t.Contests[id] = contest
	}
	return t, nil
}

func (sj plaintextSelectionJSON) decode(c *codec.Codec, key string) (s record.PlaintextTallySelection, err error) {
	if sj.ObjectID != key {
		return s, mismatch("object_id", "selection %q under key %q", sj.ObjectID, key)
	}
	s.SelectionID = sj.ObjectID
	s.Tally = sj.Tally
	if s.Value, err = c.ModP("value", sj.Value); err != nil {
		return
	}
	if s.Message, err = sj.Message.decode(c); err != nil {
		return s, egrecord.At("message", err)
	}
	for i, shj := range sj.Shares {
		share, err := shj.decode(c, key)
		if err != nil {
			return s, egrecord.At(index("shares", i), err)
		}
		s.Shares = append(s.Shares, share)
	}
	return s, nil
}

func (shj shareJSON) decode(c *codec.Codec, selectionID string) (p record.PartialDecryption, err error) {
	if shj.ObjectID != selectionID {
		return p, mismatch("object_id", "share for %q in selection %q", shj.ObjectID, selectionID)
	}
	if err = required("guardian_id", shj.GuardianID); err != nil {
		return
	}
	p.SelectionID = shj.ObjectID
	p.GuardianID = shj.GuardianID
	if p.Share, err = c.ModP("share", shj.Share); err != nil {
		return
	}
	if shj.Proof != nil {
		proof, err := shj.Proof.decode(c)
		if err != nil {
			return p, egrecord.At("proof", err)
		}
		p.Proof = &proof
	}
	if len(shj.RecoveredParts) > 0 {
		p.RecoveredParts = make(map[string]record.RecoveredPartialDecryption)
	}
	for _, gid := range sortedKeys(shj.RecoveredParts) {
		rj := shj.RecoveredParts[gid]
		field := item("recovered_parts", gid)
		switch {
		case rj.GuardianID != gid:
			return p, egrecord.At(field, mismatch("guardian_id",
				"part of guardian %q under key %q", rj.GuardianID, gid))
		case rj.MissingGuardianID != p.GuardianID:
			return p, egrecord.At(field, mismatch("missing_guardian_id",
				"part recovers %q in the share of %q", rj.MissingGuardianID, p.GuardianID))
		case rj.ObjectID != selectionID:
			return p, egrecord.At(field, mismatch("object_id",
				"part for %q in selection %q", rj.ObjectID, selectionID))
		}
		part := record.RecoveredPartialDecryption{
			DecryptingGuardianID: rj.GuardianID,
			MissingGuardianID:    rj.MissingGuardianID,
		}
		if part.Share, err = c.ModP("share", rj.Share); err != nil {
			return p, egrecord.At(field, err)
		}
		if part.RecoveryKey, err = c.ModP("recovery_key", rj.RecoveryKey); err != nil {
			return p, egrecord.At(field, err)
		}
		if part.Proof, err = rj.Proof.decode(c); err != nil {
			return p, egrecord.At(field+".proof", err)
		}
		p.RecoveredParts[gid] = part
	}
	if c.Strict() {
		if err = p.Validate(); err != nil {
			return p, err
		}
	}
	return p, nil
}

// EncodePlaintextTally writes a decrypted tally. Map keys are the ids of
// the contests, selections and recovering guardians.
func EncodePlaintextTally(c *codec.Codec, t record.PlaintextTally) ([]byte, error) {
	tj := plaintextTallyJSON{
		ObjectID: t.TallyID,
		Contests: make(map[string]plaintextContestJSON),
	}
	for _, contest := range t.Contests {
		cj := plaintextContestJSON{
			ObjectID:   contest.ContestID,
			Selections: make(map[string]plaintextSelectionJSON),
		}
		for _, s := range contest.Selections {
			sj := plaintextSelectionJSON{
				ObjectID: s.SelectionID,
				Tally:    s.Tally,
				Value:    c.EncodeModP(s.Value),
				Message:  encodeCiphertext(c, s.Message),
				Shares:   []shareJSON{},
			}
			for _, p := range s.Shares {
				sj.Shares = append(sj.Shares, encodeShare(c, p))
			}
			cj.Selections[s.SelectionID] = sj
		}
		tj.Contests[contest.ContestID] = cj
	}
	return marshal(tj)
}

func encodeShare(c *codec.Codec, p record.PartialDecryption) shareJSON {
	shj := shareJSON{
		ObjectID:   p.SelectionID,
		GuardianID: p.GuardianID,
		Share:      c.EncodeModP(p.Share),
	}
	if p.Proof != nil {
		proof := encodeProof(c, *p.Proof)
		shj.Proof = &proof
	}
	if len(p.RecoveredParts) > 0 {
		shj.RecoveredParts = make(map[string]recoveredJSON)
	}
	for _, part := range p.RecoveredParts {
		shj.RecoveredParts[part.DecryptingGuardianID] = recoveredJSON{
			ObjectID:          p.SelectionID,
			GuardianID:        part.DecryptingGuardianID,
			MissingGuardianID: part.MissingGuardianID,
			Share:             c.EncodeModP(part.Share),
			RecoveryKey:       c.EncodeModP(part.RecoveryKey),
			Proof:             encodeProof(c, part.Proof),
		}
	}
	return shj
}
