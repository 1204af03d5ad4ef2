package publish

import (
	"context"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/codec"
	"go.dedis.ch/egrecord/consumer"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/internal/fixture"
	"go.dedis.ch/egrecord/store"
	"go.dedis.ch/egrecord/wire"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

func TestMain(m *testing.M) {
	log.MainTest(m)
}

var testCodec = codec.New(group.NewTestContext())

// names lists every document of a store.
func names(t *testing.T, s store.Store) []string {
	var out []string
	for _, name := range store.Singletons() {
		if s.Exists(name) {
			out = append(out, name)
		}
	}
	for _, c := range store.Collections() {
		members, err := s.Members(c)
		require.NoError(t, err)
		out = append(out, members...)
	}
	return out
}

func TestPublisher_Layout(t *testing.T) {
	tmp, err := ioutil.TempDir("", "egrecord-publish")
	require.NoError(t, err)
	defer os.RemoveAll(tmp)

	d := store.NewDir(tmp)
	r := fixture.Record(testCodec.Group())
	require.NoError(t, New(d, testCodec).WriteRecord(r))

	for _, f := range []string{
		"manifest.json", "constants.json", "context.json", "coefficients.json",
		"encrypted_tally.json", "tally.json",
		"guardians/guardian_G1.json",
		"encryption_devices/device_2.json",
		"submitted_ballots/submitted_ballot_ballot-1.json",
		"spoiled_ballots/spoiled_ballot_ballot-2.json",
		"invalid_ballots/plaintext_ballot_ballot-3.json",
	} {
		require.FileExists(t, filepath.Join(tmp, f))
	}

	// Every document is written in canonical form.
	for _, name := range names(t, d) {
		buf, err := store.ReadAll(d, name)
		require.NoError(t, err)
		kind := kindOf(t, name)
		again, err := wire.Canonical(testCodec, kind, buf)
		require.NoError(t, err, name)
		require.Equal(t, string(buf), string(again), name)
	}
}

func kindOf(t *testing.T, name string) wire.Kind {
	kinds := map[string]wire.Kind{
		store.Manifest:         wire.KindManifest,
		store.Constants:        wire.KindConstants,
		store.Context:          wire.KindContext,
		store.Coefficients:     wire.KindCoefficients,
		store.EncryptedTally:   wire.KindEncryptedTally,
		store.Tally:            wire.KindPlaintextTally,
		store.Devices:          wire.KindEncryptionDevice,
		store.Guardians:        wire.KindGuardian,
		store.SubmittedBallots: wire.KindEncryptedBallot,
		store.SpoiledBallots:   wire.KindPlaintextTally,
		store.InvalidBallots:   wire.KindPlaintextBallot,
	}
	if c, _, ok := store.MemberID(name); ok {
		name = c
	}
	k, ok := kinds[name]
	require.True(t, ok, name)
	return k
}

func TestPublisher_Copy(t *testing.T) {
	tmp, err := ioutil.TempDir("", "egrecord-publish")
	require.NoError(t, err)
	defer os.RemoveAll(tmp)

	d := store.NewDir(filepath.Join(tmp, "record"))
	require.NoError(t, New(d, testCodec).WriteRecord(fixture.Record(testCodec.Group())))
	r, err := consumer.New(d, testCodec).ReadRecord(context.Background())
	require.NoError(t, err)

	b, err := store.OpenBolt(filepath.Join(tmp, "record.db"))
	require.NoError(t, err)
	defer b.Close()
	require.NoError(t, New(b, testCodec).WriteRecord(r))

	want := names(t, d)
	require.Equal(t, want, names(t, b))
	for _, name := range want {
		dbuf, err := store.ReadAll(d, name)
		require.NoError(t, err)
		bbuf, err := store.ReadAll(b, name)
		require.NoError(t, err)
		require.Equal(t, string(dbuf), string(bbuf), name)
	}

	rb, err := consumer.New(b, testCodec).ReadRecord(context.Background())
	require.NoError(t, err)
	require.Equal(t, r.Stage, rb.Stage)
	require.Equal(t, r.Manifest.CryptoHash, rb.Manifest.CryptoHash)
}

// brokenStore refuses every write.
type brokenStore struct {
	store.Store
}

func (brokenStore) Create(name string) (io.WriteCloser, error) {
	return nil, xerrors.New("read-only")
}

func TestPublisher_Failure(t *testing.T) {
	tmp, err := ioutil.TempDir("", "egrecord-publish")
	require.NoError(t, err)
	defer os.RemoveAll(tmp)

	p := New(brokenStore{store.NewDir(tmp)}, testCodec)
	err = p.WriteManifest(fixture.Manifest())
	require.True(t, xerrors.Is(err, egrecord.ErrIOFailure), "%+v", err)

	// Values that cannot be encoded do not reach the store.
	err = p.write(store.Manifest, 42)
	require.Error(t, err)
	require.False(t, xerrors.Is(err, egrecord.ErrIOFailure))
}
