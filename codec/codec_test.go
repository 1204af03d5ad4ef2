package codec

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/record"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

func TestMain(m *testing.M) {
	log.MainTest(m)
}

func TestToken_JSON(t *testing.T) {
	var tokens struct {
		A Token `json:"a"`
		B Token `json:"b"`
		C Token `json:"c"`
		D Token `json:"d"`
		E Token `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a":"01","b":12,"c":null,"d":true}`), &tokens)
	require.NoError(t, err)

	require.True(t, tokens.A.Quoted())
	require.Equal(t, "01", tokens.A.Text())
	require.False(t, tokens.B.Quoted())
	require.Equal(t, "12", tokens.B.Text())
	require.True(t, tokens.C.IsNull())
	require.Equal(t, "true", tokens.D.Text())
	require.True(t, tokens.E.IsNull())

	buf, err := json.Marshal(tokens)
	require.NoError(t, err)
	require.Equal(t, `{"a":"01","b":12,"c":null,"d":true,"e":null}`, string(buf))

	err = json.Unmarshal([]byte(`{"a":{"x":1}}`), &tokens)
	require.Error(t, err)
}

func TestCodec_ModP(t *testing.T) {
	g := group.NewTestContext()
	c := New(g)

	e, err := c.ModP("pad", String("2a"))
	require.NoError(t, err)
	require.Equal(t, int64(42), e.Big().Int64())
	require.Equal(t, g.ModPLen()*2, len(c.EncodeModP(e).Text()))

	back, err := c.ModP("pad", c.EncodeModP(e))
	require.NoError(t, err)
	require.True(t, e.Equal(back))

	_, err = c.ModP("pad", String(g.LargePrime().Text(16)))
	require.True(t, xerrors.Is(err, egrecord.ErrInvalidGroupElement))
	_, err = c.ModP("pad", String("-2a"))
	require.True(t, xerrors.Is(err, egrecord.ErrInvalidGroupElement))
	_, err = c.ModP("pad", String("zz"))
	require.True(t, xerrors.Is(err, egrecord.ErrInvalidGroupElement))
	_, err = c.ModP("pad", Token{})
	require.True(t, xerrors.Is(err, egrecord.ErrMissingRequiredField))

	opt, err := c.OptionalModP("pad", Token{})
	require.NoError(t, err)
	require.False(t, opt.IsValid())
	require.True(t, c.EncodeModP(opt).IsNull())
}

func TestCodec_ModQ(t *testing.T) {
	g := group.NewTestContext()
	c := New(g)

	e, err := c.ModQ("challenge", String("abc"))
	require.NoError(t, err)
	require.Equal(t, int64(0xabc), e.Big().Int64())

	_, err = c.ModQ("challenge", String(g.SmallPrime().Text(16)))
	require.True(t, xerrors.Is(err, egrecord.ErrInvalidGroupElement))
	q1 := new(big.Int).Sub(g.SmallPrime(), big.NewInt(1))
	_, err = c.ModQ("challenge", String(q1.Text(16)))
	require.NoError(t, err)
}

func TestCodec_Digest(t *testing.T) {
	c := New(group.NewTestContext())

	d, err := c.Digest("crypto_hash", String("0102"))
	require.NoError(t, err)
	require.Equal(t, byte(1), d[30])
	require.Equal(t, byte(2), d[31])

	tok := c.EncodeDigest(d)
	require.Equal(t, 64, len(tok.Text()))
	back, err := c.Digest("crypto_hash", tok)
	require.NoError(t, err)
	require.Equal(t, d, back)

	// 2^256-1 is larger than q.
	max := "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	_, err = c.Digest("crypto_hash", String(max))
	require.True(t, xerrors.Is(err, egrecord.ErrInvalidDigest))
	_, err = c.Digest("crypto_hash", String("x1"))
	require.True(t, xerrors.Is(err, egrecord.ErrInvalidDigest))
}

func TestBigInt(t *testing.T) {
	v, err := BigInt("large_prime", String("ff"))
	require.NoError(t, err)
	require.Equal(t, int64(255), v.Int64())
	v, err = BigInt("large_prime", String("fff"))
	require.NoError(t, err)
	require.Equal(t, int64(4095), v.Int64())
	require.Equal(t, "fff", EncodeBigInt(v).Text())
	require.Equal(t, "0", EncodeBigInt(big.NewInt(0)).Text())

	_, err = BigInt("large_prime", String("-ff"))
	require.True(t, xerrors.Is(err, egrecord.ErrMalformedInteger))
	_, err = BigInt("large_prime", String(""))
	require.True(t, xerrors.Is(err, egrecord.ErrMalformedInteger))
}

func TestBool(t *testing.T) {
	for _, s := range []string{"00", "false"} {
		b, err := Bool("is_write_in", String(s))
		require.NoError(t, err)
		require.False(t, b)
	}
	for _, s := range []string{"01", "true"} {
		b, err := Bool("is_write_in", String(s))
		require.NoError(t, err)
		require.True(t, b)
	}
	b, err := Bool("is_write_in", Number("true"))
	require.NoError(t, err)
	require.True(t, b)

	_, err = Bool("is_write_in", String("yes"))
	require.True(t, xerrors.Is(err, egrecord.ErrUnknownBooleanEncoding))

	require.Equal(t, "01", EncodeBool(true).Text())
	require.Equal(t, "00", EncodeBool(false).Text())
}

func TestUint64(t *testing.T) {
	v, err := Uint64("timestamp", String("ff"))
	require.NoError(t, err)
	require.Equal(t, uint64(255), v)
	v, err = Uint64("timestamp", Number("255"))
	require.NoError(t, err)
	require.Equal(t, uint64(255), v)
	require.Equal(t, "ff", EncodeUint64(255).Text())

	v, err = Uint64("timestamp", EncodeUint64(^uint64(0)))
	require.NoError(t, err)
	require.Equal(t, ^uint64(0), v)

	_, err = Uint64("timestamp", String("1ffffffffffffffff"))
	require.True(t, xerrors.Is(err, egrecord.ErrMalformedInteger))
	_, err = Uint64("timestamp", Number("-1"))
	require.True(t, xerrors.Is(err, egrecord.ErrMalformedInteger))
}

func TestBallotState(t *testing.T) {
	for _, s := range []record.BallotState{record.BallotCast, record.BallotSpoiled, record.BallotUnknown} {
		back, err := BallotState("state", EncodeBallotState(s))
		require.NoError(t, err)
		require.Equal(t, s, back)
	}

	// Encoding is lossy for anything but cast and spoiled.
	back, err := BallotState("state", EncodeBallotState(record.BallotState(7)))
	require.NoError(t, err)
	require.Equal(t, record.BallotUnknown, back)

	_, err = BallotState("state", Number("4"))
	require.True(t, xerrors.Is(err, egrecord.ErrUnknownStateEncoding))
	_, err = BallotState("state", Number("0"))
	require.True(t, xerrors.Is(err, egrecord.ErrUnknownStateEncoding))
}

func TestEnums(t *testing.T) {
	et, err := ElectionType("type", String("general"))
	require.NoError(t, err)
	require.Equal(t, record.ElectionGeneral, et)
	_, err = ElectionType("type", String("GENERAL"))
	require.True(t, xerrors.Is(err, egrecord.ErrMalformedToken))

	ru, err := ReportingUnitType("type", String("precinct"))
	require.NoError(t, err)
	require.Equal(t, record.ReportingUnitType("precinct"), ru)

	_, err = VoteVariation("vote_variation", Token{})
	require.True(t, xerrors.Is(err, egrecord.ErrMissingRequiredField))
	vv, err := VoteVariation("vote_variation", String("one_of_m"))
	require.NoError(t, err)
	require.Equal(t, record.VariationOneOfM, vv)

	var e *egrecord.Error
	_, err = VoteVariation("vote_variation", Number("3"))
	require.True(t, xerrors.As(err, &e))
	require.Equal(t, "vote_variation", e.Field())
}

func TestCodec_Options(t *testing.T) {
	g := group.NewTestContext()
	require.False(t, New(g).Strict())
	require.True(t, New(g, StrictShares()).Strict())
	require.Equal(t, g, New(g).Group())
}
