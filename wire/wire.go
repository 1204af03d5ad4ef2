// Package wire reads and writes the documents of an election record.
//
// There is one decode and one encode function per kind of document. The
// caller always says which kind it expects: nothing in a payload selects
// the type it is decoded into. Decoding either returns a complete value or
// an *egrecord.Error naming the field that failed; no partial value is ever
// returned.
//
// Encoded documents are canonical: two-space indented JSON, absent values
// written as null, map keys sorted and empty lists written as [].
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/codec"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/record"
	"golang.org/x/xerrors"
)

// Kind is the kind of a document.
type Kind int

// The kinds of documents of a record.
const (
	KindManifest Kind = iota
	KindConstants
	KindContext
	KindGuardian
	KindCoefficients
	KindDecryptingGuardian
	KindEncryptedTally
	KindPlaintextTally
	KindEncryptedBallot
	KindPlaintextBallot
	KindEncryptionDevice
)

var kindNames = []string{
	KindManifest:           "manifest",
	KindConstants:          "constants",
	KindContext:            "context",
	KindGuardian:           "guardian",
	KindCoefficients:       "coefficients",
	KindDecryptingGuardian: "decrypting_guardian",
	KindEncryptedTally:     "encrypted_tally",
	KindPlaintextTally:     "tally",
	KindEncryptedBallot:    "encrypted_ballot",
	KindPlaintextBallot:    "plaintext_ballot",
	KindEncryptionDevice:   "encryption_device",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, xerrors.Errorf("unknown document kind %q", name)
}

// Kinds returns the names of all kinds.
func Kinds() []string {
	return append([]string{}, kindNames...)
}

// Decode reads a document of the given kind. The value is one of the
// record types, group.Constants or record.LagrangeCoefficients.
func Decode(c *codec.Codec, kind Kind, data []byte) (interface{}, error) {
	switch kind {
	case KindManifest:
		return DecodeManifest(c, data)
	case KindConstants:
		return DecodeConstants(data)
	case KindContext:
		return DecodeContext(c, data)
	case KindGuardian:
		return DecodeGuardian(c, data)
	case KindCoefficients:
		return DecodeCoefficients(c, data)
	case KindDecryptingGuardian:
		return DecodeDecryptingGuardian(c, data)
	case KindEncryptedTally:
		return DecodeEncryptedTally(c, data)
	case KindPlaintextTally:
		return DecodePlaintextTally(c, data)
	case KindEncryptedBallot:
		return DecodeEncryptedBallot(c, data)
	case KindPlaintextBallot:
		return DecodePlaintextBallot(data)
	case KindEncryptionDevice:
		return DecodeEncryptionDevice(data)
	}
	return nil, xerrors.Errorf("unknown document kind %v", kind)
}

// Encode writes any value returned by Decode.
func Encode(c *codec.Codec, v interface{}) ([]byte, error) {
	switch x := v.(type) {
	case record.Manifest:
		return EncodeManifest(c, x)
	case group.Constants:
		return EncodeConstants(x)
	case record.ElectionContext:
		return EncodeContext(c, x)
	case record.Guardian:
		return EncodeGuardian(c, x)
	case record.LagrangeCoefficients:
		return EncodeCoefficients(c, x)
	case record.DecryptingGuardian:
		return EncodeDecryptingGuardian(c, x)
	case record.EncryptedTally:
		return EncodeEncryptedTally(c, x)
	case record.PlaintextTally:
		return EncodePlaintextTally(c, x)
	case record.EncryptedBallot:
		return EncodeEncryptedBallot(c, x)
	case record.PlaintextBallot:
		return EncodePlaintextBallot(x)
	case record.EncryptionDevice:
		return EncodeEncryptionDevice(x)
	}
	return nil, xerrors.Errorf("cannot encode %T", v)
}

// Canonical decodes a document and writes it back in canonical form.
func Canonical(c *codec.Codec, kind Kind, data []byte) ([]byte, error) {
	v, err := Decode(c, kind, data)
	if err != nil {
		return nil, err
	}
	return Encode(c, v)
}

func unmarshal(data []byte, v interface{}) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	var te *json.UnmarshalTypeError
	if xerrors.As(err, &te) {
		return egrecord.NewError(egrecord.ErrMalformedToken, te.Field,
			"cannot read %s into %s", te.Value, te.Type)
	}
	return egrecord.WrapKind(egrecord.ErrMalformedToken, "", err)
}

func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, egrecord.WrapKind(egrecord.ErrIOFailure, "", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func required(field, s string) error {
	if s == "" {
		return egrecord.NewError(egrecord.ErrMissingRequiredField, field, "empty")
	}
	return nil
}

func mismatch(field, format string, args ...interface{}) error {
	return egrecord.NewError(egrecord.ErrReferentialMismatch, field, format, args...)
}

// objectIDs is the set of object ids already read in one collection.
type objectIDs map[string]bool

// add fails with a referential mismatch if id is already in the set.
func (ids objectIDs) add(collection, id string) error {
	if ids[id] {
		return mismatch(item(collection, id), "duplicate object_id %q", id)
	}
	ids[id] = true
	return nil
}

func noNonce(field string, t codec.Token) error {
	if t.IsNull() {
		return nil
	}
	return egrecord.NewError(egrecord.ErrNoncePresent, field, "encryption nonce must not be published")
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func item(name, id string) string {
	return fmt.Sprintf("%s[%s]", name, id)
}

func index(name string, i int) string {
	return fmt.Sprintf("%s[%d]", name, i)
}

// sortedKeys returns the keys of m in increasing order, so that decoding
// reports the same error whatever the order of the document.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func emptyStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nilStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
