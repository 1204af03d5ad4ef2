package wire

import (
	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/codec"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/record"
)

type encryptedBallotJSON struct {
	ObjectID     string              `json:"object_id"`
	StyleID      string              `json:"style_id"`
	ManifestHash codec.Token         `json:"manifest_hash"`
	Code         codec.Token         `json:"code"`
	CodeSeed     codec.Token         `json:"code_seed"`
	Contests     []ballotContestJSON `json:"contests"`
	Timestamp    codec.Token         `json:"timestamp"`
	CryptoHash   codec.Token         `json:"crypto_hash"`
	Nonce        codec.Token         `json:"nonce"`
	State        codec.Token         `json:"state"`
}

type ballotContestJSON struct {
	ObjectID         string                `json:"object_id"`
	SequenceOrder    int                   `json:"sequence_order"`
	DescriptionHash  codec.Token           `json:"description_hash"`
	BallotSelections []ballotSelectionJSON `json:"ballot_selections"`
	CryptoHash       codec.Token           `json:"crypto_hash"`
	Nonce            codec.Token           `json:"nonce"`
	Proof            constantProofJSON     `json:"proof"`
}

type constantProofJSON struct {
	Pad       codec.Token `json:"pad"`
	Data      codec.Token `json:"data"`
	Challenge codec.Token `json:"challenge"`
	Response  codec.Token `json:"response"`
	Constant  int         `json:"constant"`
}

type ballotSelectionJSON struct {
	ObjectID        string               `json:"object_id"`
	SequenceOrder   int                  `json:"sequence_order"`
	DescriptionHash codec.Token          `json:"description_hash"`
	Ciphertext      ciphertextJSON       `json:"ciphertext"`
	CryptoHash      codec.Token          `json:"crypto_hash"`
	IsPlaceholder   codec.Token          `json:"is_placeholder_selection"`
	Nonce           codec.Token          `json:"nonce"`
	Proof           disjunctiveProofJSON `json:"proof"`
	ExtendedData    *ciphertextJSON      `json:"extended_data"`
}

type disjunctiveProofJSON struct {
	ProofZeroPad       codec.Token `json:"proof_zero_pad"`
	ProofZeroData      codec.Token `json:"proof_zero_data"`
	ProofOnePad        codec.Token `json:"proof_one_pad"`
	ProofOneData       codec.Token `json:"proof_one_data"`
	ProofZeroChallenge codec.Token `json:"proof_zero_challenge"`
	ProofOneChallenge  codec.Token `json:"proof_one_challenge"`
	Challenge          codec.Token `json:"challenge"`
	ProofZeroResponse  codec.Token `json:"proof_zero_response"`
	ProofOneResponse   codec.Token `json:"proof_one_response"`
}

// DecodeEncryptedBallot reads a submitted ballot. A ballot that still
// carries one of its encryption nonces is refused.
func DecodeEncryptedBallot(c *codec.Codec, data []byte) (record.EncryptedBallot, error) {
	var bj encryptedBallotJSON
	if err := unmarshal(data, &bj); err != nil {
		return record.EncryptedBallot{}, err
	}
	b, err := bj.decode(c)
	if err != nil {
		return record.EncryptedBallot{}, err
	}
	return b, nil
}

func (bj encryptedBallotJSON) decode(c *codec.Codec) (b record.EncryptedBallot, err error) {
	if err = required("object_id", bj.ObjectID); err != nil {
		return
	}
	if err = noNonce("nonce", bj.Nonce); err != nil {
		return
	}
	b.BallotID = bj.ObjectID
	b.StyleID = bj.StyleID
	if b.ManifestHash, err = c.Digest("manifest_hash", bj.ManifestHash); err != nil {
		return
	}
	if b.Code, err = c.Digest("code", bj.Code); err != nil {
		return
	}
	if b.CodeSeed, err = c.Digest("code_seed", bj.CodeSeed); err != nil {
		return
	}
	seen := objectIDs{}
	for _, cj := range bj.Contests {
		contest, err := cj.decode(c)
		if err != nil {
			return b, egrecord.At(item("contests", cj.ObjectID), err)
		}
		if err := seen.add("contests", contest.ContestID); err != nil {
			return b, err
		}
		b.Contests = append(b.Contests, contest)
	}
	if b.Timestamp, err = codec.Uint64("timestamp", bj.Timestamp); err != nil {
		return
	}
	if b.CryptoHash, err = c.Digest("crypto_hash", bj.CryptoHash); err != nil {
		return
	}
	b.State, err = codec.BallotState("state", bj.State)
	return
}

func (cj ballotContestJSON) decode(c *codec.Codec) (bc record.EncryptedBallotContest, err error) {
	if err = required("object_id", cj.ObjectID); err != nil {
		return
	}
	if err = noNonce("nonce", cj.Nonce); err != nil {
		return
	}
	bc.ContestID = cj.ObjectID
	bc.SequenceOrder = cj.SequenceOrder
	if bc.DescriptionHash, err = c.Digest("description_hash", cj.DescriptionHash); err != nil {
		return
	}
	seen := objectIDs{}
	for _, sj := range cj.BallotSelections {
		s, err := sj.decode(c)
		if err != nil {
			return bc, egrecord.At(item("ballot_selections", sj.ObjectID), err)
		}
		if err := seen.add("ballot_selections", s.SelectionID); err != nil {
			return bc, err
		}
		bc.Selections = append(bc.Selections, s)
	}
	if bc.CryptoHash, err = c.Digest("crypto_hash", cj.CryptoHash); err != nil {
		return
	}
	bc.Proof.Constant = cj.Proof.Constant
	if bc.Proof.Proof.Challenge, err = c.ModQ("challenge", cj.Proof.Challenge); err != nil {
		return bc, egrecord.At("proof", err)
	}
	if bc.Proof.Proof.Response, err = c.ModQ("response", cj.Proof.Response); err != nil {
		return bc, egrecord.At("proof", err)
	}
	return bc, nil
}

func (sj ballotSelectionJSON) decode(c *codec.Codec) (bs record.EncryptedBallotSelection, err error) {
	if err = required("object_id", sj.ObjectID); err != nil {
		return
	}
	if err = noNonce("nonce", sj.Nonce); err != nil {
		return
	}
	bs.SelectionID = sj.ObjectID
	bs.SequenceOrder = sj.SequenceOrder
	if bs.DescriptionHash, err = c.Digest("description_hash", sj.DescriptionHash); err != nil {
		return
	}
	if bs.Ciphertext, err = sj.Ciphertext.decode(c); err != nil {
		return bs, egrecord.At("ciphertext", err)
	}
	if bs.CryptoHash, err = c.Digest("crypto_hash", sj.CryptoHash); err != nil {
		return
	}
	if bs.IsPlaceholder, err = codec.Bool("is_placeholder_selection", sj.IsPlaceholder); err != nil {
		return
	}
	if bs.Proof, err = sj.Proof.decode(c); err != nil {
		return bs, egrecord.At("proof", err)
	}
	if sj.ExtendedData != nil {
		ext, err := sj.ExtendedData.decode(c)
		if err != nil {
			return bs, egrecord.At("extended_data", err)
		}
		bs.ExtendedData = &ext
	}
	return bs, nil
}

func (pj disjunctiveProofJSON) decode(c *codec.Codec) (p record.DisjunctiveChaumPedersenProof, err error) {
	fields := []struct {
		name  string
		token codec.Token
		dst   *group.ElementModQ
	}{
		{"proof_zero_challenge", pj.ProofZeroChallenge, &p.Proof0.Challenge},
		{"proof_zero_response", pj.ProofZeroResponse, &p.Proof0.Response},
		{"proof_one_challenge", pj.ProofOneChallenge, &p.Proof1.Challenge},
		{"proof_one_response", pj.ProofOneResponse, &p.Proof1.Response},
		{"challenge", pj.Challenge, &p.Challenge},
	}
	for _, f := range fields {
		if *f.dst, err = c.ModQ(f.name, f.token); err != nil {
			return
		}
	}
	return p, nil
}

// EncodeEncryptedBallot writes a submitted ballot. Nonces are always
// written as null.
func EncodeEncryptedBallot(c *codec.Codec, b record.EncryptedBallot) ([]byte, error) {
	bj := encryptedBallotJSON{
		ObjectID:     b.BallotID,
		StyleID:      b.StyleID,
		ManifestHash: c.EncodeDigest(b.ManifestHash),
		Code:         c.EncodeDigest(b.Code),
		CodeSeed:     c.EncodeDigest(b.CodeSeed),
		Contests:     []ballotContestJSON{},
		Timestamp:    codec.EncodeUint64(b.Timestamp),
		CryptoHash:   c.EncodeDigest(b.CryptoHash),
		State:        codec.EncodeBallotState(b.State),
	}
	for _, bc := range b.Contests {
		cj := ballotContestJSON{
			ObjectID:         bc.ContestID,
			SequenceOrder:    bc.SequenceOrder,
			DescriptionHash:  c.EncodeDigest(bc.DescriptionHash),
			BallotSelections: []ballotSelectionJSON{},
			CryptoHash:       c.EncodeDigest(bc.CryptoHash),
			Proof: constantProofJSON{
				Challenge: c.EncodeModQ(bc.Proof.Proof.Challenge),
				Response:  c.EncodeModQ(bc.Proof.Proof.Response),
				Constant:  bc.Proof.Constant,
			},
		}
		for _, bs := range bc.Selections {
			sj := ballotSelectionJSON{
				ObjectID:        bs.SelectionID,
				SequenceOrder:   bs.SequenceOrder,
				DescriptionHash: c.EncodeDigest(bs.DescriptionHash),
				Ciphertext:      encodeCiphertext(c, bs.Ciphertext),
				CryptoHash:      c.EncodeDigest(bs.CryptoHash),
				IsPlaceholder:   codec.EncodeBool(bs.IsPlaceholder),
				Proof: disjunctiveProofJSON{
					ProofZeroChallenge: c.EncodeModQ(bs.Proof.Proof0.Challenge),
					ProofOneChallenge:  c.EncodeModQ(bs.Proof.Proof1.Challenge),
					Challenge:          c.EncodeModQ(bs.Proof.Challenge),
					ProofZeroResponse:  c.EncodeModQ(bs.Proof.Proof0.Response),
					ProofOneResponse:   c.EncodeModQ(bs.Proof.Proof1.Response),
				},
			}
			if bs.ExtendedData != nil {
				ext := encodeCiphertext(c, *bs.ExtendedData)
				sj.ExtendedData = &ext
			}
			cj.BallotSelections = append(cj.BallotSelections, sj)
		}
		bj.Contests = append(bj.Contests, cj)
	}
	return marshal(bj)
}

type plaintextBallotJSON struct {
	ObjectID string                       `json:"object_id"`
	StyleID  string                       `json:"style_id"`
	Contests []plaintextBallotContestJSON `json:"contests"`
}

type plaintextBallotContestJSON struct {
	ObjectID         string                         `json:"object_id"`
	SequenceOrder    int                            `json:"sequence_order"`
	BallotSelections []plaintextBallotSelectionJSON `json:"ballot_selections"`
}

type plaintextBallotSelectionJSON struct {
	ObjectID      string            `json:"object_id"`
	SequenceOrder int               `json:"sequence_order"`
	Vote          int               `json:"vote"`
	ExtendedData  *extendedDataJSON `json:"extended_data"`
}

type extendedDataJSON struct {
	Value  string `json:"value"`
	Length int    `json:"length"`
}

// DecodePlaintextBallot reads a ballot before encryption.
func DecodePlaintextBallot(data []byte) (record.PlaintextBallot, error) {
	var bj plaintextBallotJSON
	if err := unmarshal(data, &bj); err != nil {
		return record.PlaintextBallot{}, err
	}
	if err := required("object_id", bj.ObjectID); err != nil {
		return record.PlaintextBallot{}, err
	}
	b := record.PlaintextBallot{BallotID: bj.ObjectID, StyleID: bj.StyleID}
	for _, cj := range bj.Contests {
		if err := required("object_id", cj.ObjectID); err != nil {
			return record.PlaintextBallot{}, egrecord.At("contests", err)
		}
		contest := record.PlaintextBallotContest{ContestID: cj.ObjectID, SequenceOrder: cj.SequenceOrder}
		for _, sj := range cj.BallotSelections {
			field := item("contests", cj.ObjectID)
			if err := required("object_id", sj.ObjectID); err != nil {
				return record.PlaintextBallot{}, egrecord.At(field+".ballot_selections", err)
			}
			s := record.PlaintextBallotSelection{
				SelectionID:   sj.ObjectID,
				SequenceOrder: sj.SequenceOrder,
				Vote:          sj.Vote,
			}
			if sj.ExtendedData != nil {
				if sj.ExtendedData.Length != len(sj.ExtendedData.Value) {
					return record.PlaintextBallot{}, egrecord.At(field+item(".ballot_selections", sj.ObjectID),
						egrecord.NewError(egrecord.ErrMalformedInteger, "extended_data.length",
							"length %d of a %d bytes value", sj.ExtendedData.Length, len(sj.ExtendedData.Value)))
				}
				value := sj.ExtendedData.Value
				s.ExtendedData = &value
			}
			contest.Selections = append(contest.Selections, s)
		}
		b.Contests = append(b.Contests, contest)
	}
	return b, nil
}

// EncodePlaintextBallot writes a ballot before encryption.
func EncodePlaintextBallot(b record.PlaintextBallot) ([]byte, error) {
	bj := plaintextBallotJSON{
		ObjectID: b.BallotID,
		StyleID:  b.StyleID,
		Contests: []plaintextBallotContestJSON{},
	}
	for _, contest := range b.Contests {
		cj := plaintextBallotContestJSON{
			ObjectID:         contest.ContestID,
			SequenceOrder:    contest.SequenceOrder,
			BallotSelections: []plaintextBallotSelectionJSON{},
		}
		for _, s := range contest.Selections {
			sj := plaintextBallotSelectionJSON{
				ObjectID:      s.SelectionID,
				SequenceOrder: s.SequenceOrder,
				Vote:          s.Vote,
			}
			if s.ExtendedData != nil {
				sj.ExtendedData = &extendedDataJSON{Value: *s.ExtendedData, Length: len(*s.ExtendedData)}
			}
			cj.BallotSelections = append(cj.BallotSelections, sj)
		}
		bj.Contests = append(bj.Contests, cj)
	}
	return marshal(bj)
}
