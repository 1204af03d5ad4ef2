// Package codec converts the scalars of an election record between their
// document tokens and their typed values.
//
// Cryptographic values are written in hexadecimal so that their width and
// sign are never in doubt. Decoding always validates: an element mod p or
// mod q must be in range for the configured group, a digest must be a valid
// element mod q.
package codec

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/record"
)

// Codec holds the group and the rules a record is read and written with.
// It is never modified after New and can be shared between goroutines.
type Codec struct {
	group        *group.Context
	strictShares bool
}

// Option changes a rule of the codec.
type Option func(*Codec)

// StrictShares makes the assembler refuse partial decryptions that are
// neither direct nor recovered, or both.
func StrictShares() Option {
	return func(c *Codec) {
		c.strictShares = true
	}
}

// New returns a codec for the group.
func New(g *group.Context, opts ...Option) *Codec {
	c := &Codec{group: g}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Group returns the group of the codec.
func (c *Codec) Group() *group.Context {
	return c.group
}

// Strict tells whether StrictShares was given.
func (c *Codec) Strict() bool {
	return c.strictShares
}

func missing(field string) error {
	return egrecord.NewError(egrecord.ErrMissingRequiredField, field, "no value")
}

// parseHex reads an unsigned hexadecimal number of any length. An odd
// number of digits is allowed.
func parseHex(s string) ([]byte, error) {
	if s == "" {
		return nil, strconv.ErrSyntax
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}

// ModP decodes a required element mod p.
func (c *Codec) ModP(field string, t Token) (group.ElementModP, error) {
	if t.IsNull() {
		return group.ElementModP{}, missing(field)
	}
	return c.OptionalModP(field, t)
}

// OptionalModP decodes an element mod p, returning an invalid element for a
// null token.
func (c *Codec) OptionalModP(field string, t Token) (group.ElementModP, error) {
	if t.IsNull() {
		return group.ElementModP{}, nil
	}
	b, err := parseHex(t.Text())
	if err != nil {
		return group.ElementModP{}, egrecord.NewError(egrecord.ErrInvalidGroupElement,
			field, "%q is not hexadecimal", t.Text())
	}
	e, err := c.group.ElementModPFromBytes(b)
	if err != nil {
		return group.ElementModP{}, egrecord.WrapKind(egrecord.ErrInvalidGroupElement, field, err)
	}
	return e, nil
}

// EncodeModP writes an element mod p, or null if it is not valid.
func (c *Codec) EncodeModP(e group.ElementModP) Token {
	if !e.IsValid() {
		return Token{}
	}
	return String(e.String())
}

// ModQ decodes a required element mod q.
func (c *Codec) ModQ(field string, t Token) (group.ElementModQ, error) {
	if t.IsNull() {
		return group.ElementModQ{}, missing(field)
	}
	b, err := parseHex(t.Text())
	if err != nil {
		return group.ElementModQ{}, egrecord.NewError(egrecord.ErrInvalidGroupElement,
			field, "%q is not hexadecimal", t.Text())
	}
	e, err := c.group.ElementModQFromBytes(b)
	if err != nil {
		return group.ElementModQ{}, egrecord.WrapKind(egrecord.ErrInvalidGroupElement, field, err)
	}
	return e, nil
}

// EncodeModQ writes an element mod q, or null if it is not valid.
func (c *Codec) EncodeModQ(e group.ElementModQ) Token {
	if !e.IsValid() {
		return Token{}
	}
	return String(e.String())
}

// Digest decodes a required 256-bit digest. The value is read as an element
// mod q first, so a digest that is not a valid element is refused.
func (c *Codec) Digest(field string, t Token) (group.UInt256, error) {
	if t.IsNull() {
		return group.UInt256{}, missing(field)
	}
	b, err := parseHex(t.Text())
	if err != nil {
		return group.UInt256{}, egrecord.NewError(egrecord.ErrInvalidDigest,
			field, "%q is not hexadecimal", t.Text())
	}
	e, err := c.group.ElementModQFromBytes(b)
	if err != nil {
		return group.UInt256{}, egrecord.WrapKind(egrecord.ErrInvalidDigest, field, err)
	}
	d, ok := e.Digest()
	if !ok {
		return group.UInt256{}, egrecord.NewError(egrecord.ErrInvalidDigest, field,
			"value is wider than 256 bits")
	}
	return d, nil
}

// EncodeDigest writes a digest as wide as an element mod q.
func (c *Codec) EncodeDigest(d group.UInt256) Token {
	e, err := c.group.ElementModQFromDigest(d)
	if err != nil {
		// The digest cannot be read back with this group; keep all its bits.
		return String(d.String())
	}
	return String(e.String())
}

// BigInt decodes an unbounded unsigned integer. No group check is made.
func BigInt(field string, t Token) (*big.Int, error) {
	if t.IsNull() {
		return nil, missing(field)
	}
	b, err := parseHex(t.Text())
	if err != nil {
		return nil, egrecord.NewError(egrecord.ErrMalformedInteger, field,
			"%q is not hexadecimal", t.Text())
	}
	return new(big.Int).SetBytes(b), nil
}

// EncodeBigInt writes an unbounded unsigned integer in hexadecimal without
// leading zeros.
func EncodeBigInt(v *big.Int) Token {
	if v == nil {
		return Token{}
	}
	return String(v.Text(16))
}

// Bool decodes a boolean. Both the "00"/"01" form and the older
// "false"/"true" form are read. An absent boolean is false.
func Bool(field string, t Token) (bool, error) {
	if t.IsNull() {
		return false, nil
	}
	switch t.Text() {
	case "00", "false":
		return false, nil
	case "01", "true":
		return true, nil
	}
	return false, egrecord.NewError(egrecord.ErrUnknownBooleanEncoding, field,
		"%q", t.Text())
}

// EncodeBool writes "01" or "00".
func EncodeBool(b bool) Token {
	if b {
		return String("01")
	}
	return String("00")
}

// Uint64 decodes a hexadecimal counter or timestamp. A bare JSON number, as
// written by older publishers, is read as decimal.
func Uint64(field string, t Token) (uint64, error) {
	if t.IsNull() {
		return 0, missing(field)
	}
	base := 16
	if !t.Quoted() {
		base = 10
	}
	v, err := strconv.ParseUint(t.Text(), base, 64)
	if err != nil {
		return 0, egrecord.NewError(egrecord.ErrMalformedInteger, field,
			"%q: %v", t.Text(), err)
	}
	return v, nil
}

// EncodeUint64 writes v in hexadecimal.
func EncodeUint64(v uint64) Token {
	return String(strconv.FormatUint(v, 16))
}

// BallotState decodes the numeric state code: 1 cast, 2 spoiled, 3
// unknown.
func BallotState(field string, t Token) (record.BallotState, error) {
	if t.IsNull() {
		return 0, missing(field)
	}
	switch strings.Trim(t.Text(), " ") {
	case "1":
		return record.BallotCast, nil
	case "2":
		return record.BallotSpoiled, nil
	case "3":
		return record.BallotUnknown, nil
	}
	return 0, egrecord.NewError(egrecord.ErrUnknownStateEncoding, field, "%q", t.Text())
}

// EncodeBallotState writes the state code. Every state that is not cast or
// spoiled is written as unknown.
func EncodeBallotState(s record.BallotState) Token {
	switch s {
	case record.BallotCast:
		return Number("1")
	case record.BallotSpoiled:
		return Number("2")
	default:
		return Number("3")
	}
}

// ElectionType decodes a required election type.
func ElectionType(field string, t Token) (record.ElectionType, error) {
	v := record.ElectionType(t.Text())
	if err := enum(field, t, v.Valid()); err != nil {
		return "", err
	}
	return v, nil
}

// ReportingUnitType decodes a required reporting unit type.
func ReportingUnitType(field string, t Token) (record.ReportingUnitType, error) {
	v := record.ReportingUnitType(t.Text())
	if err := enum(field, t, v.Valid()); err != nil {
		return "", err
	}
	return v, nil
}

// VoteVariation decodes a required vote variation.
func VoteVariation(field string, t Token) (record.VoteVariationType, error) {
	v := record.VoteVariationType(t.Text())
	if err := enum(field, t, v.Valid()); err != nil {
		return "", err
	}
	return v, nil
}

func enum(field string, t Token, valid bool) error {
	if t.IsNull() {
		return missing(field)
	}
	if !t.Quoted() || !valid {
		return egrecord.NewError(egrecord.ErrMalformedToken, field,
			"unknown value %q", t.Text())
	}
	return nil
}
