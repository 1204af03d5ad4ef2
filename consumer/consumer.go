// Package consumer reads a published election record from a store.
//
// Singleton documents are read on demand and a failure is returned to the
// caller. Collections are read best-effort: every member is decoded on its
// own, possibly in parallel, and a member that cannot be read or decoded is
// logged, reported as a Failure and left out of the result.
package consumer

import (
	"context"
	"runtime"

	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/codec"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/record"
	"go.dedis.ch/egrecord/store"
	"go.dedis.ch/egrecord/wire"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// Failure is a member of a collection that was left out.
type Failure struct {
	Name string
	Err  error
}

// Consumer reads one record. It can be used from several goroutines.
type Consumer struct {
	store   store.Store
	codec   *codec.Codec
	workers int
}

// Option changes how a Consumer reads.
type Option func(*Consumer)

// Workers sets how many members of a collection are decoded at the same
// time. Values smaller than one mean one.
func Workers(n int) Option {
	return func(c *Consumer) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

// New returns a consumer of the record in s, decoded with c.
func New(s store.Store, c *codec.Codec, opts ...Option) *Consumer {
	cons := &Consumer{store: s, codec: c, workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(cons)
	}
	return cons
}

// Codec returns the codec the record is decoded with.
func (c *Consumer) Codec() *codec.Codec {
	return c.codec
}

// IsValid fails if the record has no manifest.
func (c *Consumer) IsValid() error {
	if !c.store.Exists(store.Manifest) {
		return xerrors.Errorf("invalid record: %s: %w", store.Manifest, store.ErrNotFound)
	}
	return nil
}

// read returns a singleton document. A missing document is reported with
// store.ErrNotFound, any other failure of the store as ErrIOFailure.
func (c *Consumer) read(name string) ([]byte, error) {
	buf, err := store.ReadAll(c.store, name)
	if xerrors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, egrecord.WrapKind(egrecord.ErrIOFailure, name, err)
	}
	return buf, nil
}

func (c *Consumer) decode(name string, kind wire.Kind) (interface{}, error) {
	buf, err := c.read(name)
	if err != nil {
		return nil, err
	}
	v, err := wire.Decode(c.codec, kind, buf)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", name, err)
	}
	log.Lvl3("read", name)
	return v, nil
}

// Manifest reads the manifest, with all of its hashes computed.
func (c *Consumer) Manifest() (record.Manifest, error) {
	v, err := c.decode(store.Manifest, wire.KindManifest)
	if err != nil {
		return record.Manifest{}, err
	}
	return v.(record.Manifest), nil
}

// Constants reads the group constants the record was published with.
func (c *Consumer) Constants() (group.Constants, error) {
	v, err := c.decode(store.Constants, wire.KindConstants)
	if err != nil {
		return group.Constants{}, err
	}
	return v.(group.Constants), nil
}

// Context reads the election context.
func (c *Consumer) Context() (record.ElectionContext, error) {
	v, err := c.decode(store.Context, wire.KindContext)
	if err != nil {
		return record.ElectionContext{}, err
	}
	return v.(record.ElectionContext), nil
}

// Coefficients reads the Lagrange coefficients of the decrypting guardians.
func (c *Consumer) Coefficients() (record.LagrangeCoefficients, error) {
	v, err := c.decode(store.Coefficients, wire.KindCoefficients)
	if err != nil {
		return record.LagrangeCoefficients{}, err
	}
	return v.(record.LagrangeCoefficients), nil
}

// EncryptedTally reads the encrypted tally.
func (c *Consumer) EncryptedTally() (record.EncryptedTally, error) {
	v, err := c.decode(store.EncryptedTally, wire.KindEncryptedTally)
	if err != nil {
		return record.EncryptedTally{}, err
	}
	return v.(record.EncryptedTally), nil
}

// DecryptedTally reads the decrypted tally of the cast ballots.
func (c *Consumer) DecryptedTally() (record.PlaintextTally, error) {
	v, err := c.decode(store.Tally, wire.KindPlaintextTally)
	if err != nil {
		return record.PlaintextTally{}, err
	}
	return v.(record.PlaintextTally), nil
}

// batch decodes all members of a collection. The values are in the order of
// the member names. Only the cancellation of ctx makes it fail as a whole.
func (c *Consumer) batch(ctx context.Context, collection string, kind wire.Kind) ([]interface{}, []Failure, error) {
	names, err := c.store.Members(collection)
	if err != nil {
		return nil, nil, egrecord.WrapKind(egrecord.ErrIOFailure, collection, err)
	}
	values := make([]interface{}, len(names))
	errs := make([]error, len(names))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.workers)
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf, err := store.ReadAll(c.store, name)
			if err != nil {
				errs[i] = egrecord.WrapKind(egrecord.ErrIOFailure, name, err)
				return nil
			}
			values[i], errs[i] = wire.Decode(c.codec, kind, buf)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, xerrors.Errorf("reading %s: %w", collection, err)
	}

	var out []interface{}
	var failures []Failure
	for i, name := range names {
		if errs[i] != nil {
			log.Errorf("leaving out %s: %+v", name, errs[i])
			failures = append(failures, Failure{Name: name, Err: errs[i]})
			continue
		}
		out = append(out, values[i])
	}
	log.Lvlf2("read %d of %d documents in %s", len(out), len(names), collection)
	return out, failures, nil
}

// Devices reads the encryption devices.
func (c *Consumer) Devices(ctx context.Context) ([]record.EncryptionDevice, []Failure, error) {
	values, failures, err := c.batch(ctx, store.Devices, wire.KindEncryptionDevice)
	if err != nil {
		return nil, nil, err
	}
	var devices []record.EncryptionDevice
	for _, v := range values {
		devices = append(devices, v.(record.EncryptionDevice))
	}
	return devices, failures, nil
}

// Guardians reads the public records of the guardians.
func (c *Consumer) Guardians(ctx context.Context) ([]record.Guardian, []Failure, error) {
	values, failures, err := c.batch(ctx, store.Guardians, wire.KindGuardian)
	if err != nil {
		return nil, nil, err
	}
	var guardians []record.Guardian
	for _, v := range values {
		guardians = append(guardians, v.(record.Guardian))
	}
	return guardians, failures, nil
}

// SubmittedBallots reads the encrypted ballots, cast or spoiled.
func (c *Consumer) SubmittedBallots(ctx context.Context) ([]record.EncryptedBallot, []Failure, error) {
	values, failures, err := c.batch(ctx, store.SubmittedBallots, wire.KindEncryptedBallot)
	if err != nil {
		return nil, nil, err
	}
	var ballots []record.EncryptedBallot
	for _, v := range values {
		ballots = append(ballots, v.(record.EncryptedBallot))
	}
	return ballots, failures, nil
}

// SpoiledBallotTallies reads the decryptions of the spoiled ballots.
func (c *Consumer) SpoiledBallotTallies(ctx context.Context) ([]record.PlaintextTally, []Failure, error) {
	values, failures, err := c.batch(ctx, store.SpoiledBallots, wire.KindPlaintextTally)
	if err != nil {
		return nil, nil, err
	}
	var tallies []record.PlaintextTally
	for _, v := range values {
		tallies = append(tallies, v.(record.PlaintextTally))
	}
	return tallies, failures, nil
}

// InvalidBallots reads the plaintext ballots that were refused by the
// encryption device.
func (c *Consumer) InvalidBallots(ctx context.Context) ([]record.PlaintextBallot, []Failure, error) {
	values, failures, err := c.batch(ctx, store.InvalidBallots, wire.KindPlaintextBallot)
	if err != nil {
		return nil, nil, err
	}
	var ballots []record.PlaintextBallot
	for _, v := range values {
		ballots = append(ballots, v.(record.PlaintextBallot))
	}
	return ballots, failures, nil
}

// DecryptingGuardians joins the coefficients with the guardians. A record
// without coefficients has no decrypting guardians.
func (c *Consumer) DecryptingGuardians(ctx context.Context) ([]record.DecryptingGuardian, []Failure, error) {
	if !c.store.Exists(store.Coefficients) {
		return nil, nil, nil
	}
	guardians, failures, err := c.Guardians(ctx)
	if err != nil {
		return nil, nil, err
	}
	lc, err := c.Coefficients()
	if err != nil {
		return nil, nil, err
	}
	dgs, err := joinGuardians(guardians, lc)
	if err != nil {
		return nil, nil, err
	}
	return dgs, failures, nil
}
