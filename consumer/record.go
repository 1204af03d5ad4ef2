package consumer

import (
	"context"

	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/record"
	"go.dedis.ch/egrecord/store"
	"go.dedis.ch/egrecord/wire"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// Stage is how far an election has gone, judged from the documents present
// in its record.
type Stage string

// The stages of an election, in order.
const (
	StageConfig    Stage = "CONFIG"
	StageInit      Stage = "INIT"
	StageEncrypted Stage = "ENCRYPTED"
	StageTallied   Stage = "TALLIED"
	StageDecrypted Stage = "DECRYPTED"
)

// Stage returns the latest stage the record has a document for.
func (c *Consumer) Stage() Stage {
	switch {
	case c.store.Exists(store.Tally):
		return StageDecrypted
	case c.store.Exists(store.EncryptedTally):
		return StageTallied
	}
	ballots, err := c.store.Members(store.SubmittedBallots)
	if err != nil {
		log.Warn("listing ballots:", err)
	}
	switch {
	case len(ballots) > 0:
		return StageEncrypted
	case c.store.Exists(store.Context):
		return StageInit
	}
	return StageConfig
}

// Record is everything a record holds up to its stage. Documents that are
// absent for the stage are left empty.
type Record struct {
	Stage     Stage
	Manifest  record.Manifest
	Constants *group.Constants
	Context   *record.ElectionContext

	Guardians           []record.Guardian
	Devices             []record.EncryptionDevice
	DecryptingGuardians []record.DecryptingGuardian
	SubmittedBallots    []record.EncryptedBallot
	SpoiledBallots      []record.PlaintextTally
	InvalidBallots      []record.PlaintextBallot

	EncryptedTally *record.EncryptedTally
	DecryptedTally *record.PlaintextTally

	// Failures are the members of collections that were left out.
	Failures []Failure
}

// ReadRecord reads the whole record. A record without a manifest is
// invalid. A singleton that exists but cannot be decoded is an error.
func (c *Consumer) ReadRecord(ctx context.Context) (*Record, error) {
	if err := c.IsValid(); err != nil {
		return nil, err
	}
	r := &Record{Stage: c.Stage()}
	var err error
	if r.Manifest, err = c.Manifest(); err != nil {
		return nil, err
	}
	if c.store.Exists(store.Constants) {
		k, err := c.Constants()
		if err != nil {
			return nil, err
		}
		r.Constants = &k
	}
	if c.store.Exists(store.Context) {
		ec, err := c.Context()
		if err != nil {
			return nil, err
		}
		r.Context = &ec
	}
	if c.store.Exists(store.EncryptedTally) {
		t, err := c.EncryptedTally()
		if err != nil {
			return nil, err
		}
		r.EncryptedTally = &t
	}
	if c.store.Exists(store.Tally) {
		t, err := c.DecryptedTally()
		if err != nil {
			return nil, err
		}
		r.DecryptedTally = &t
	}

	var failures []Failure
	if r.Guardians, failures, err = c.Guardians(ctx); err != nil {
		return nil, err
	}
	r.Failures = append(r.Failures, failures...)
	if r.Devices, failures, err = c.Devices(ctx); err != nil {
		return nil, err
	}
	r.Failures = append(r.Failures, failures...)
	if r.SubmittedBallots, failures, err = c.SubmittedBallots(ctx); err != nil {
		return nil, err
	}
	r.Failures = append(r.Failures, failures...)
	if r.SpoiledBallots, failures, err = c.SpoiledBallotTallies(ctx); err != nil {
		return nil, err
	}
	r.Failures = append(r.Failures, failures...)
	if r.InvalidBallots, failures, err = c.InvalidBallots(ctx); err != nil {
		return nil, err
	}
	r.Failures = append(r.Failures, failures...)

	if c.store.Exists(store.Coefficients) {
		lc, err := c.Coefficients()
		if err != nil {
			return nil, err
		}
		if r.DecryptingGuardians, err = joinGuardians(r.Guardians, lc); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func joinGuardians(guardians []record.Guardian, lc record.LagrangeCoefficients) ([]record.DecryptingGuardian, error) {
	dgs, err := wire.JoinDecryptingGuardians(guardians, lc)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", store.Coefficients, err)
	}
	return dgs, nil
}
