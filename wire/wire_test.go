package wire

import (
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/codec"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/hashtree"
	"go.dedis.ch/egrecord/record"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

func TestMain(m *testing.M) {
	log.MainTest(m)
}

var testCodec = codec.New(group.NewTestContext())

func modP(t *testing.T, v int64) group.ElementModP {
	e, err := testCodec.Group().ElementModP(big.NewInt(v))
	require.NoError(t, err)
	return e
}

func modQ(t *testing.T, v int64) group.ElementModQ {
	e, err := testCodec.Group().ElementModQ(big.NewInt(v))
	require.NoError(t, err)
	return e
}

func digest(b byte) group.UInt256 {
	var d group.UInt256
	d[31] = b
	return d
}

// requireKind checks that err is an *egrecord.Error of the kind, at the
// field.
func requireKind(t *testing.T, err error, kind error, field string) {
	require.Error(t, err)
	require.True(t, xerrors.Is(err, kind), "%+v", err)
	var e *egrecord.Error
	require.True(t, xerrors.As(err, &e))
	require.Equal(t, field, e.Field())
}

// requireStable checks that decoding the encoded value and encoding it
// again gives the same bytes.
func requireStable(t *testing.T, kind Kind, buf []byte) interface{} {
	v, err := Decode(testCodec, kind, buf)
	require.NoError(t, err)
	again, err := Encode(testCodec, v)
	require.NoError(t, err)
	require.Equal(t, string(buf), string(again))
	return v
}

func testManifest() record.Manifest {
	name := func(s string) record.InternationalizedText {
		return record.InternationalizedText{Text: []record.Language{{Value: s, Language: "en"}}}
	}
	return record.Manifest{
		ElectionScopeID: "hamilton-general",
		SpecVersion:     "v0.95",
		Type:            record.ElectionGeneral,
		StartDate:       "2020-03-01T08:00:00-05:00",
		EndDate:         "2020-03-01T20:00:00-05:00",
		Name:            name("Hamilton County General Election"),
		ContactInformation: &record.ContactInformation{
			AddressLine: []string{"1234 Samuel Adams Way", "Hamilton, Ozark 99999"},
			Email:       []record.AnnotatedString{{Annotation: "press", Value: "inquiries@hamilton.state.gov"}},
			Phone:       []record.AnnotatedString{{Annotation: "domestic", Value: "123-456-7890"}},
			Name:        "Hamilton State Election Commission",
		},
		GeopoliticalUnits: []record.GeopoliticalUnit{
			{ObjectID: "hamilton-county", Name: "Hamilton County", Type: "county",
				ContactInformation: &record.ContactInformation{Name: "Hamilton County Clerk"}},
		},
		Parties: []record.Party{
			{ObjectID: "whig", Name: name("Whig Party"), Abbreviation: "WHI", Color: "AAAAAA", LogoURI: "http://some/path/to/whig.svg"},
		},
		Candidates: []record.Candidate{
			{ObjectID: "barchi-hallaren", Name: name("Joseph Barchi and Joseph Hallaren"), PartyID: "whig"},
			{ObjectID: "write-in", IsWriteIn: true, ImageURI: "https://example.com/write-in.png"},
		},
		Contests: []record.ContestDescription{{
			ObjectID:            "justice-supreme-court",
			SequenceOrder:       1,
			ElectoralDistrictID: "hamilton-county",
			VoteVariation:       record.VariationNOfM,
			NumberElected:       2,
			VotesAllowed:        2,
			Name:                "Justice of the Supreme Court",
			BallotTitle:         name("Justice of the Supreme Court"),
			BallotSubtitle:      name("Please choose up to two candidates"),
			PrimaryPartyIDs:     []string{"whig"},
			Selections: []record.SelectionDescription{
				{ObjectID: "barchi-hallaren-selection", SequenceOrder: 0, CandidateID: "barchi-hallaren"},
				{ObjectID: "write-in-selection", SequenceOrder: 1, CandidateID: "write-in"},
			},
		}},
		BallotStyles: []record.BallotStyle{
			{ObjectID: "congress-district-5", GeopoliticalUnitIDs: []string{"hamilton-county"}, PartyIDs: []string{"whig"}},
		},
	}
}

func TestManifest_RoundTrip(t *testing.T) {
	m := testManifest()
	root := hashtree.Seal(&m)

	buf, err := EncodeManifest(testCodec, m)
	require.NoError(t, err)
	decoded, err := DecodeManifest(testCodec, buf)
	require.NoError(t, err)
	require.Equal(t, m, decoded)
	require.Equal(t, root, decoded.CryptoHash)
	requireStable(t, KindManifest, buf)

	minimal := record.Manifest{ElectionScopeID: "minimal", Type: record.ElectionOther}
	hashtree.Seal(&minimal)
	buf, err = EncodeManifest(testCodec, minimal)
	require.NoError(t, err)
	require.Contains(t, string(buf), `"contact_information": null`)
	require.Contains(t, string(buf), `"contests": []`)
	decoded, err = DecodeManifest(testCodec, buf)
	require.NoError(t, err)
	require.Equal(t, minimal, decoded)
}

func TestManifest_Decode(t *testing.T) {
	doc := `{
  "election_scope_id": "scope",
  "type": "general",
  "start_date": "2020-03-01T08:00:00-05:00",
  "end_date": "2020-03-01T20:00:00-05:00",
  "candidates": [{"object_id": "a", "is_write_in": "true"}],
  "contests": [{
    "object_id": "c1",
    "sequence_order": 0,
    "vote_variation": "one_of_m",
    "number_elected": 1,
    "ballot_selections": [{"object_id": "s1", "candidate_id": "a", "sequence_order": 0}]
  }]
}`
	m, err := DecodeManifest(testCodec, []byte(doc))
	require.NoError(t, err)
	require.Equal(t, 1, m.Contests[0].VotesAllowed)
	require.True(t, m.Candidates[0].IsWriteIn)
	require.False(t, m.CryptoHash.IsZero())

	// The hashes only depend on the content, not on the formatting.
	buf, err := EncodeManifest(testCodec, m)
	require.NoError(t, err)
	again, err := DecodeManifest(testCodec, buf)
	require.NoError(t, err)
	require.Equal(t, m.CryptoHash, again.CryptoHash)

	_, err = DecodeManifest(testCodec, []byte(strings.Replace(doc, `"one_of_m"`, `"first_past"`, 1)))
	requireKind(t, err, egrecord.ErrMalformedToken, "contests[c1].vote_variation")
	_, err = DecodeManifest(testCodec, []byte(strings.Replace(doc, `"true"`, `"yes"`, 1)))
	requireKind(t, err, egrecord.ErrUnknownBooleanEncoding, "candidates[0].is_write_in")
	_, err = DecodeManifest(testCodec, []byte(`{"election_scope_id": "x", "type": "general", "contests": 3}`))
	require.True(t, xerrors.Is(err, egrecord.ErrMalformedToken))
}

func TestManifest_DuplicateIDs(t *testing.T) {
	contest := func(id string, selections ...string) string {
		var sels []string
		for i, s := range selections {
			sels = append(sels, fmt.Sprintf(`{"object_id": %q, "candidate_id": "a", "sequence_order": %d}`, s, i))
		}
		return fmt.Sprintf(`{"object_id": %q, "sequence_order": 0, "vote_variation": "one_of_m",
  "number_elected": 1, "ballot_selections": [%s]}`, id, strings.Join(sels, ", "))
	}
	manifest := func(field, items string) []byte {
		return []byte(fmt.Sprintf(`{"election_scope_id": "scope", "type": "general", %q: [%s]}`, field, items))
	}

	_, err := DecodeManifest(testCodec, manifest("contests", contest("c1", "s1")+", "+contest("c1", "s2")))
	requireKind(t, err, egrecord.ErrReferentialMismatch, "contests[c1]")
	_, err = DecodeManifest(testCodec, manifest("contests", contest("c1", "s1", "s1")))
	requireKind(t, err, egrecord.ErrReferentialMismatch, "contests[c1].ballot_selections[s1]")
	// Selection ids only need to be unique within their contest.
	m, err := DecodeManifest(testCodec, manifest("contests", contest("c1", "s1")+", "+contest("c2", "s1")))
	require.NoError(t, err)
	require.Len(t, m.Contests, 2)

	for _, c := range []struct{ field, id, items string }{
		{"geopolitical_units", "u", `{"object_id": "u", "type": "county"}, {"object_id": "u", "type": "city"}`},
		{"parties", "p", `{"object_id": "p"}, {"object_id": "p"}`},
		{"candidates", "a", `{"object_id": "a", "is_write_in": "00"}, {"object_id": "a"}`},
		{"ballot_styles", "b", `{"object_id": "b"}, {"object_id": "b"}`},
	} {
		_, err = DecodeManifest(testCodec, manifest(c.field, c.items))
		requireKind(t, err, egrecord.ErrReferentialMismatch, c.field+"["+c.id+"]")
	}
}

func TestConstants(t *testing.T) {
	doc := `{"name": "tiny", "large_prime": "ff", "small_prime": "7", "cofactor": "2", "generator": "3"}`
	k, err := DecodeConstants([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, int64(255), k.LargePrime.Int64())
	require.Equal(t, group.FromWire, k.Source)

	expected := testCodec.Group().Constants(group.FromConfig)
	buf, err := EncodeConstants(expected)
	require.NoError(t, err)
	k, err = DecodeConstants(buf)
	require.NoError(t, err)
	require.True(t, expected.Equal(k))
	require.Equal(t, group.FromWire, k.Source)

	_, err = DecodeConstants([]byte(`{"name": "tiny", "large_prime": "ff"}`))
	requireKind(t, err, egrecord.ErrMissingRequiredField, "small_prime")
}

func TestContext_RoundTrip(t *testing.T) {
	ec := record.ElectionContext{
		NumberOfGuardians:      3,
		Quorum:                 2,
		ElGamalPublicKey:       modP(t, 1234),
		ManifestHash:           digest(1),
		CryptoBaseHash:         digest(2),
		CryptoExtendedBaseHash: digest(3),
		CommitmentHash:         digest(4),
		ExtendedData:           map[string]string{"created_by": "test"},
	}
	buf, err := EncodeContext(testCodec, ec)
	require.NoError(t, err)
	decoded := requireStable(t, KindContext, buf).(record.ElectionContext)
	require.True(t, ec.ElGamalPublicKey.Equal(decoded.ElGamalPublicKey))
	require.Equal(t, ec.CommitmentHash, decoded.CommitmentHash)
	require.Equal(t, ec.ExtendedData, decoded.ExtendedData)

	ec.ExtendedData = nil
	buf, err = EncodeContext(testCodec, ec)
	require.NoError(t, err)
	require.Contains(t, string(buf), `"extended_data": null`)
	requireStable(t, KindContext, buf)

	ec.Quorum = 4
	buf, err = EncodeContext(testCodec, ec)
	require.NoError(t, err)
	_, err = DecodeContext(testCodec, buf)
	requireKind(t, err, egrecord.ErrMalformedInteger, "quorum")
}

func TestEncryptionDevice(t *testing.T) {
	d := record.EncryptionDevice{DeviceID: 91755, SessionID: 1, LaunchCode: 42, Location: "polling-place"}
	buf, err := EncodeEncryptionDevice(d)
	require.NoError(t, err)
	require.Contains(t, string(buf), `"device_id": "1666b"`)
	decoded := requireStable(t, KindEncryptionDevice, buf)
	require.Equal(t, d, decoded)

	legacy := `{"device_id": 91755, "session_id": 1, "launch_code": 42, "location": "polling-place"}`
	decoded, err = DecodeEncryptionDevice([]byte(legacy))
	require.NoError(t, err)
	require.Equal(t, d, decoded)
}

func testGuardian(t *testing.T, id string, x int) record.Guardian {
	return record.Guardian{
		GuardianID:             id,
		XCoordinate:            x,
		CoefficientCommitments: []group.ElementModP{modP(t, int64(100+x)), modP(t, int64(200+x))},
		CoefficientProofs: []record.SchnorrProof{
			{Challenge: modQ(t, 1), Response: modQ(t, 2)},
			{Challenge: modQ(t, 3), Response: modQ(t, 4)},
		},
	}
}

func TestGuardian(t *testing.T) {
	g := testGuardian(t, "guardian-1", 1)
	buf, err := EncodeGuardian(testCodec, g)
	require.NoError(t, err)
	require.Contains(t, string(buf), `"public_key": null`)
	decoded := requireStable(t, KindGuardian, buf).(record.Guardian)
	require.Equal(t, g.GuardianID, decoded.GuardianID)
	require.Equal(t, 1, decoded.XCoordinate)
	require.True(t, g.PublicKey().Equal(decoded.PublicKey()))
	require.Len(t, decoded.CoefficientProofs, 2)

	other := strings.Replace(string(buf), testCodec.EncodeModP(modP(t, 101)).Text(),
		testCodec.EncodeModP(modP(t, 102)).Text(), 1)
	_, err = DecodeGuardian(testCodec, []byte(other))
	requireKind(t, err, egrecord.ErrReferentialMismatch, "election_public_key")

	_, err = DecodeGuardian(testCodec, []byte(`{"guardian_id": "g", "election_commitments": ["zz"]}`))
	requireKind(t, err, egrecord.ErrInvalidGroupElement, "election_commitments[0]")
}

func TestCoefficients_Join(t *testing.T) {
	lc := record.LagrangeCoefficients{Coefficients: map[string]group.ElementModQ{
		"guardian-2": modQ(t, 22),
		"guardian-1": modQ(t, 11),
	}}
	buf, err := EncodeCoefficients(testCodec, lc)
	require.NoError(t, err)
	require.True(t, strings.Index(string(buf), "guardian-1") < strings.Index(string(buf), "guardian-2"))
	decoded := requireStable(t, KindCoefficients, buf).(record.LagrangeCoefficients)
	require.Equal(t, []string{"guardian-1", "guardian-2"}, decoded.GuardianIDs())

	guardians := []record.Guardian{
		testGuardian(t, "guardian-3", 3),
		testGuardian(t, "guardian-2", 2),
		testGuardian(t, "guardian-1", 1),
	}
	dgs, err := JoinDecryptingGuardians(guardians, decoded)
	require.NoError(t, err)
	require.Len(t, dgs, 2)
	require.Equal(t, "guardian-1", dgs[0].GuardianID)
	require.Equal(t, 1, dgs[0].XCoordinate)
	require.True(t, modQ(t, 11).Equal(dgs[0].LagrangeCoefficient))
	require.Equal(t, 2, dgs[1].XCoordinate)

	_, err = JoinDecryptingGuardians(guardians[:2], decoded)
	requireKind(t, err, egrecord.ErrReferentialMismatch, "coefficients[guardian-1]")

	buf, err = EncodeDecryptingGuardian(testCodec, dgs[1])
	require.NoError(t, err)
	require.Contains(t, string(buf), `"lagrangeCoordinate"`)
	dg := requireStable(t, KindDecryptingGuardian, buf).(record.DecryptingGuardian)
	require.Equal(t, "guardian-2", dg.GuardianID)
	require.Equal(t, 2, dg.XCoordinate)
}

func TestEncryptedTally(t *testing.T) {
	doc := `{
  "object_id": "tally",
  "contests": {
    "C2": {"object_id": "C2", "sequence_order": 2, "description_hash": "02", "selections": {}},
    "C1": {"object_id": "C1", "sequence_order": 1, "description_hash": "01", "selections": {
      "S2": {"object_id": "S2", "sequence_order": 0, "description_hash": "a2", "ciphertext": {"pad": "2", "data": "3"}},
      "S1": {"object_id": "S1", "sequence_order": 1, "description_hash": "a1", "ciphertext": {"pad": "4", "data": "5"}}
    }}
  }
}`
	tally, err := DecodeEncryptedTally(testCodec, []byte(doc))
	require.NoError(t, err)
	require.Equal(t, "C1", tally.Contests[0].ContestID)
	require.Equal(t, "C2", tally.Contests[1].ContestID)
	require.Equal(t, "S2", tally.Contests[0].Selections[0].SelectionID)
	s, ok := tally.Contests[0].Selection("S1")
	require.True(t, ok)
	require.True(t, modP(t, 4).Equal(s.Ciphertext.Pad))

	buf, err := EncodeEncryptedTally(testCodec, tally)
	require.NoError(t, err)
	requireStable(t, KindEncryptedTally, buf)

	bad := strings.Replace(doc, `"S1": {"object_id": "S1"`, `"S1": {"object_id": "S2"`, 1)
	_, err = DecodeEncryptedTally(testCodec, []byte(bad))
	requireKind(t, err, egrecord.ErrReferentialMismatch, "contests[C1].selections[S1].object_id")

	bad = strings.Replace(doc, `"C2": {"object_id": "C2"`, `"C2": {"object_id": "C3"`, 1)
	_, err = DecodeEncryptedTally(testCodec, []byte(bad))
	requireKind(t, err, egrecord.ErrReferentialMismatch, "contests[C2].object_id")

	bad = strings.Replace(doc, `"pad": "4"`, `"pad": null`, 1)
	_, err = DecodeEncryptedTally(testCodec, []byte(bad))
	requireKind(t, err, egrecord.ErrMissingRequiredField, "contests[C1].selections[S1].ciphertext.pad")
}

const recoveredTally = `{
  "object_id": "tally",
  "contests": {
    "C1": {"object_id": "C1", "selections": {
      "S1": {
        "object_id": "S1",
        "tally": 3,
        "value": "8",
        "message": {"pad": "2", "data": "3"},
        "shares": [{
          "object_id": "S1",
          "guardian_id": "G1",
          "share": "5",
          "proof": null,
          "recovered_parts": {
            "G2": {"object_id": "S1", "guardian_id": "G2", "missing_guardian_id": "G1", "share": "6", "recovery_key": "7",
              "proof": {"pad": null, "data": null, "challenge": "1", "response": "2"}},
            "G3": {"object_id": "S1", "guardian_id": "G3", "missing_guardian_id": "G1", "share": "9", "recovery_key": "a",
              "proof": {"pad": null, "data": null, "challenge": "3", "response": "4"}}
          }
        }]
      }
    }}
  }
}`

func TestPlaintextTally_Recovered(t *testing.T) {
	tally, err := DecodePlaintextTally(testCodec, []byte(recoveredTally))
	require.NoError(t, err)
	sel := tally.Contests["C1"].Selections["S1"]
	require.Equal(t, 3, sel.Tally)
	require.Len(t, sel.Shares, 1)

	share := sel.Shares[0]
	require.Nil(t, share.Proof)
	require.Equal(t, record.ShareRecovered, share.Kind())
	require.NoError(t, share.Validate())
	require.Equal(t, []string{"G2", "G3"}, share.RecoveringGuardianIDs())
	part := share.RecoveredParts["G3"]
	require.Equal(t, "G3", part.DecryptingGuardianID)
	require.Equal(t, "G1", part.MissingGuardianID)
	require.True(t, modP(t, 10).Equal(part.RecoveryKey))
	require.True(t, modQ(t, 3).Equal(part.Proof.Challenge))

	buf, err := EncodePlaintextTally(testCodec, tally)
	require.NoError(t, err)
	requireStable(t, KindPlaintextTally, buf)
	require.Equal(t, []string{"C1"}, tally.ContestIDs())
	require.Equal(t, []string{"S1"}, tally.Contests["C1"].SelectionIDs())
}

func TestPlaintextTally_Mismatch(t *testing.T) {
	bad := strings.Replace(recoveredTally, `"S1": {
        "object_id": "S1"`, `"S1": {
        "object_id": "S2"`, 1)
	_, err := DecodePlaintextTally(testCodec, []byte(bad))
	requireKind(t, err, egrecord.ErrReferentialMismatch, "contests[C1].selections[S1].object_id")

	bad = strings.Replace(recoveredTally, `"guardian_id": "G3", "missing_guardian_id": "G1"`,
		`"guardian_id": "G3", "missing_guardian_id": "G4"`, 1)
	_, err = DecodePlaintextTally(testCodec, []byte(bad))
	requireKind(t, err, egrecord.ErrReferentialMismatch,
		"contests[C1].selections[S1].shares[0].recovered_parts[G3].missing_guardian_id")

	bad = strings.Replace(recoveredTally, `"G2": {"object_id": "S1", "guardian_id": "G2"`,
		`"G2": {"object_id": "S1", "guardian_id": "G5"`, 1)
	_, err = DecodePlaintextTally(testCodec, []byte(bad))
	requireKind(t, err, egrecord.ErrReferentialMismatch,
		"contests[C1].selections[S1].shares[0].recovered_parts[G2].guardian_id")

	// With several bad entries the first one by id is reported.
	bad = strings.Replace(recoveredTally, `"missing_guardian_id": "G1"`, `"missing_guardian_id": "G4"`, -1)
	for i := 0; i < 10; i++ {
		_, err = DecodePlaintextTally(testCodec, []byte(bad))
		requireKind(t, err, egrecord.ErrReferentialMismatch,
			"contests[C1].selections[S1].shares[0].recovered_parts[G2].missing_guardian_id")
	}
}

func TestPlaintextTally_StrictShares(t *testing.T) {
	// Both a proof and recovered parts.
	ambiguous := strings.Replace(recoveredTally, `"proof": null`,
		`"proof": {"pad": null, "data": null, "challenge": "1", "response": "1"}`, 1)
	tally, err := DecodePlaintextTally(testCodec, []byte(ambiguous))
	require.NoError(t, err)
	share := tally.Contests["C1"].Selections["S1"].Shares[0]
	require.Equal(t, record.ShareAmbiguous, share.Kind())
	require.True(t, xerrors.Is(share.Validate(), egrecord.ErrInvalidShare))

	strict := codec.New(testCodec.Group(), codec.StrictShares())
	_, err = DecodePlaintextTally(strict, []byte(ambiguous))
	require.True(t, xerrors.Is(err, egrecord.ErrInvalidShare))
	_, err = DecodePlaintextTally(strict, []byte(recoveredTally))
	require.NoError(t, err)

	// Neither of them.
	empty := `{"object_id": "t", "contests": {"C1": {"object_id": "C1", "selections": {"S1": {
  "object_id": "S1", "tally": 0, "value": "1", "message": {"pad": "1", "data": "1"},
  "shares": [{"object_id": "S1", "guardian_id": "G1", "share": "1", "proof": null, "recovered_parts": {}}]}}}}}`
	tally, err = DecodePlaintextTally(testCodec, []byte(empty))
	require.NoError(t, err)
	require.Equal(t, record.ShareEmpty, tally.Contests["C1"].Selections["S1"].Shares[0].Kind())
	_, err = DecodePlaintextTally(strict, []byte(empty))
	require.True(t, xerrors.Is(err, egrecord.ErrInvalidShare))
}

func testBallot(t *testing.T, state record.BallotState) record.EncryptedBallot {
	ext := record.ElGamalCiphertext{Pad: modP(t, 11), Data: modP(t, 12)}
	return record.EncryptedBallot{
		BallotID:     "ballot-1",
		StyleID:      "congress-district-5",
		ManifestHash: digest(1),
		CodeSeed:     digest(2),
		Code:         digest(3),
		Timestamp:    1617826342,
		CryptoHash:   digest(4),
		State:        state,
		Contests: []record.EncryptedBallotContest{{
			ContestID:       "justice-supreme-court",
			SequenceOrder:   1,
			DescriptionHash: digest(5),
			CryptoHash:      digest(6),
			Proof: record.ConstantChaumPedersenProof{
				Proof:    record.ChaumPedersenProof{Challenge: modQ(t, 7), Response: modQ(t, 8)},
				Constant: 2,
			},
			Selections: []record.EncryptedBallotSelection{
				{
					SelectionID:     "barchi-hallaren-selection",
					DescriptionHash: digest(7),
					Ciphertext:      record.ElGamalCiphertext{Pad: modP(t, 9), Data: modP(t, 10)},
					CryptoHash:      digest(8),
					Proof: record.DisjunctiveChaumPedersenProof{
						Proof0:    record.ChaumPedersenProof{Challenge: modQ(t, 1), Response: modQ(t, 2)},
						Proof1:    record.ChaumPedersenProof{Challenge: modQ(t, 3), Response: modQ(t, 4)},
						Challenge: modQ(t, 5),
					},
				},
				{
					SelectionID:     "write-in-selection",
					SequenceOrder:   1,
					DescriptionHash: digest(9),
					Ciphertext:      record.ElGamalCiphertext{Pad: modP(t, 13), Data: modP(t, 14)},
					CryptoHash:      digest(10),
					IsPlaceholder:   true,
					Proof: record.DisjunctiveChaumPedersenProof{
						Proof0:    record.ChaumPedersenProof{Challenge: modQ(t, 1), Response: modQ(t, 2)},
						Proof1:    record.ChaumPedersenProof{Challenge: modQ(t, 3), Response: modQ(t, 4)},
						Challenge: modQ(t, 5),
					},
					ExtendedData: &ext,
				},
			},
		}},
	}
}

func TestEncryptedBallot(t *testing.T) {
	b := testBallot(t, record.BallotCast)
	buf, err := EncodeEncryptedBallot(testCodec, b)
	require.NoError(t, err)
	require.Contains(t, string(buf), `"nonce": null`)
	require.Contains(t, string(buf), `"is_placeholder_selection": "01"`)
	require.Contains(t, string(buf), `"state": 1`)

	decoded := requireStable(t, KindEncryptedBallot, buf).(record.EncryptedBallot)
	require.Equal(t, record.BallotCast, decoded.State)
	require.Equal(t, b.Timestamp, decoded.Timestamp)
	require.Equal(t, b.Code, decoded.Code)
	sel := decoded.Contests[0].Selections[1]
	require.True(t, sel.IsPlaceholder)
	require.NotNil(t, sel.ExtendedData)
	require.True(t, b.Contests[0].Selections[1].ExtendedData.Equal(*sel.ExtendedData))
	require.Nil(t, decoded.Contests[0].Selections[0].ExtendedData)
	require.True(t, b.Contests[0].Proof.Proof.Equal(decoded.Contests[0].Proof.Proof))
	require.Equal(t, 2, decoded.Contests[0].Proof.Constant)

	// Only cast and spoiled survive a round trip.
	b.State = record.BallotState(0)
	buf, err = EncodeEncryptedBallot(testCodec, b)
	require.NoError(t, err)
	decoded, err = DecodeEncryptedBallot(testCodec, buf)
	require.NoError(t, err)
	require.Equal(t, record.BallotUnknown, decoded.State)
}

func TestEncryptedBallot_Nonce(t *testing.T) {
	buf, err := EncodeEncryptedBallot(testCodec, testBallot(t, record.BallotSpoiled))
	require.NoError(t, err)
	doc := string(buf)

	first := strings.Index(doc, `"nonce": null`)
	require.True(t, first > 0)
	withNonce := doc[:first] + `"nonce": "1234"` + doc[first+len(`"nonce": null`):]
	_, err = DecodeEncryptedBallot(testCodec, []byte(withNonce))
	requireKind(t, err, egrecord.ErrNoncePresent,
		"contests[justice-supreme-court].ballot_selections[barchi-hallaren-selection].nonce")

	last := strings.LastIndex(doc, `"nonce": null`)
	withNonce = doc[:last] + `"nonce": "1234"` + doc[last+len(`"nonce": null`):]
	_, err = DecodeEncryptedBallot(testCodec, []byte(withNonce))
	requireKind(t, err, egrecord.ErrNoncePresent, "nonce")

	_, err = DecodeEncryptedBallot(testCodec, []byte(strings.Replace(doc, `"state": 2`, `"state": 5`, 1)))
	requireKind(t, err, egrecord.ErrUnknownStateEncoding, "state")
}

func TestEncryptedBallot_DuplicateIDs(t *testing.T) {
	b := testBallot(t, record.BallotCast)
	b.Contests[0].Selections[1].SelectionID = b.Contests[0].Selections[0].SelectionID
	buf, err := EncodeEncryptedBallot(testCodec, b)
	require.NoError(t, err)
	_, err = DecodeEncryptedBallot(testCodec, buf)
	requireKind(t, err, egrecord.ErrReferentialMismatch,
		"contests[justice-supreme-court].ballot_selections[barchi-hallaren-selection]")

	b = testBallot(t, record.BallotCast)
	b.Contests = append(b.Contests, b.Contests[0])
	buf, err = EncodeEncryptedBallot(testCodec, b)
	require.NoError(t, err)
	_, err = DecodeEncryptedBallot(testCodec, buf)
	requireKind(t, err, egrecord.ErrReferentialMismatch, "contests[justice-supreme-court]")
}

func TestPlaintextBallot(t *testing.T) {
	writeIn := "Susan B. Anthony"
	b := record.PlaintextBallot{
		BallotID: "ballot-1",
		StyleID:  "congress-district-5",
		Contests: []record.PlaintextBallotContest{{
			ContestID:     "justice-supreme-court",
			SequenceOrder: 1,
			Selections: []record.PlaintextBallotSelection{
				{SelectionID: "barchi-hallaren-selection", Vote: 1},
				{SelectionID: "write-in-selection", SequenceOrder: 1, Vote: 1, ExtendedData: &writeIn},
			},
		}},
	}
	buf, err := EncodePlaintextBallot(b)
	require.NoError(t, err)
	require.Contains(t, string(buf), `"length": 16`)
	decoded := requireStable(t, KindPlaintextBallot, buf)
	require.Equal(t, b, decoded)

	_, err = DecodePlaintextBallot([]byte(strings.Replace(string(buf), `"length": 16`, `"length": 3`, 1)))
	requireKind(t, err, egrecord.ErrMalformedInteger,
		"contests[justice-supreme-court].ballot_selections[write-in-selection].extended_data.length")
}

func TestKind(t *testing.T) {
	for _, name := range Kinds() {
		k, err := ParseKind(name)
		require.NoError(t, err)
		require.Equal(t, name, k.String())
	}
	_, err := ParseKind("ballot")
	require.Error(t, err)
	_, err = Decode(testCodec, Kind(99), []byte("{}"))
	require.Error(t, err)
	_, err = Encode(testCodec, 3)
	require.Error(t, err)
}
