// Package publish writes an election record to a store, in the layout the
// consumer package reads.
package publish

import (
	"strconv"

	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/codec"
	"go.dedis.ch/egrecord/consumer"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/record"
	"go.dedis.ch/egrecord/store"
	"go.dedis.ch/egrecord/wire"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// Publisher writes the documents of one record.
type Publisher struct {
	w     store.Writer
	codec *codec.Codec
}

// New returns a publisher writing to w with c.
func New(w store.Writer, c *codec.Codec) *Publisher {
	return &Publisher{w: w, codec: c}
}

func (p *Publisher) write(name string, v interface{}) error {
	buf, err := wire.Encode(p.codec, v)
	if err != nil {
		return xerrors.Errorf("%s: %w", name, err)
	}
	if err := store.WriteAll(p.w, name, buf); err != nil {
		return egrecord.WrapKind(egrecord.ErrIOFailure, name, err)
	}
	log.Lvl3("wrote", name)
	return nil
}

// WriteManifest writes the manifest.
func (p *Publisher) WriteManifest(m record.Manifest) error {
	return p.write(store.Manifest, m)
}

// WriteConstants writes the group constants.
func (p *Publisher) WriteConstants(k group.Constants) error {
	return p.write(store.Constants, k)
}

// WriteContext writes the election context.
func (p *Publisher) WriteContext(ec record.ElectionContext) error {
	return p.write(store.Context, ec)
}

// WriteGuardian writes the public record of one guardian.
func (p *Publisher) WriteGuardian(g record.Guardian) error {
	return p.write(store.Member(store.Guardians, g.GuardianID), g)
}

// WriteDevice writes one encryption device, named by its decimal id.
func (p *Publisher) WriteDevice(d record.EncryptionDevice) error {
	return p.write(store.Member(store.Devices, strconv.FormatUint(d.DeviceID, 10)), d)
}

// WriteCoefficients writes the Lagrange coefficients of the decrypting
// guardians.
func (p *Publisher) WriteCoefficients(lc record.LagrangeCoefficients) error {
	return p.write(store.Coefficients, lc)
}

// WriteSubmittedBallot writes one encrypted ballot.
func (p *Publisher) WriteSubmittedBallot(b record.EncryptedBallot) error {
	return p.write(store.Member(store.SubmittedBallots, b.BallotID), b)
}

// WriteSpoiledBallotTally writes the decryption of one spoiled ballot. Its
// tally id is the id of the ballot.
func (p *Publisher) WriteSpoiledBallotTally(t record.PlaintextTally) error {
	return p.write(store.Member(store.SpoiledBallots, t.TallyID), t)
}

// WriteInvalidBallot writes a plaintext ballot that could not be encrypted.
func (p *Publisher) WriteInvalidBallot(b record.PlaintextBallot) error {
	return p.write(store.Member(store.InvalidBallots, b.BallotID), b)
}

// WriteEncryptedTally writes the encrypted tally.
func (p *Publisher) WriteEncryptedTally(t record.EncryptedTally) error {
	return p.write(store.EncryptedTally, t)
}

// WriteDecryptedTally writes the decrypted tally.
func (p *Publisher) WriteDecryptedTally(t record.PlaintextTally) error {
	return p.write(store.Tally, t)
}

// WriteRecord writes everything the record holds. The coefficients are
// rebuilt from the decrypting guardians.
func (p *Publisher) WriteRecord(r *consumer.Record) error {
	if err := p.WriteManifest(r.Manifest); err != nil {
		return err
	}
	if r.Constants != nil {
		if err := p.WriteConstants(*r.Constants); err != nil {
			return err
		}
	}
	if r.Context != nil {
		if err := p.WriteContext(*r.Context); err != nil {
			return err
		}
	}
	for _, g := range r.Guardians {
		if err := p.WriteGuardian(g); err != nil {
			return err
		}
	}
	for _, d := range r.Devices {
		if err := p.WriteDevice(d); err != nil {
			return err
		}
	}
	if len(r.DecryptingGuardians) > 0 {
		lc := record.LagrangeCoefficients{Coefficients: make(map[string]group.ElementModQ)}
		for _, dg := range r.DecryptingGuardians {
			lc.Coefficients[dg.GuardianID] = dg.LagrangeCoefficient
		}
		if err := p.WriteCoefficients(lc); err != nil {
			return err
		}
	}
	for _, b := range r.SubmittedBallots {
		if err := p.WriteSubmittedBallot(b); err != nil {
			return err
		}
	}
	for _, t := range r.SpoiledBallots {
		if err := p.WriteSpoiledBallotTally(t); err != nil {
			return err
		}
	}
	for _, b := range r.InvalidBallots {
		if err := p.WriteInvalidBallot(b); err != nil {
			return err
		}
	}
	if r.EncryptedTally != nil {
		if err := p.WriteEncryptedTally(*r.EncryptedTally); err != nil {
			return err
		}
	}
	if r.DecryptedTally != nil {
		if err := p.WriteDecryptedTally(*r.DecryptedTally); err != nil {
			return err
		}
	}
	return nil
}
