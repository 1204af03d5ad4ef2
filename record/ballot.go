package record

import "go.dedis.ch/egrecord/group"

// EncryptedBallot is a submitted ballot. The encryption nonces are never
// part of it.
type EncryptedBallot struct {
	BallotID     string
	StyleID      string
	ManifestHash group.UInt256
	CodeSeed     group.UInt256
	Code         group.UInt256
	Contests     []EncryptedBallotContest
	Timestamp    uint64
	CryptoHash   group.UInt256
	State        BallotState
}

// EncryptedBallotContest is one encrypted contest of a ballot.
type EncryptedBallotContest struct {
	ContestID       string
	SequenceOrder   int
	DescriptionHash group.UInt256
	Selections      []EncryptedBallotSelection
	CryptoHash      group.UInt256
	Proof           ConstantChaumPedersenProof
}

// EncryptedBallotSelection is one encrypted selection of a contest.
type EncryptedBallotSelection struct {
	SelectionID     string
	SequenceOrder   int
	DescriptionHash group.UInt256
	Ciphertext      ElGamalCiphertext
	CryptoHash      group.UInt256
	IsPlaceholder   bool
	Proof           DisjunctiveChaumPedersenProof
	ExtendedData    *ElGamalCiphertext
}

// ConstantChaumPedersenProof proves that the selections of a contest sum
// to Constant.
type ConstantChaumPedersenProof struct {
	Proof    ChaumPedersenProof
	Constant int
}

// DisjunctiveChaumPedersenProof proves that a selection encrypts 0 or 1.
type DisjunctiveChaumPedersenProof struct {
	Proof0    ChaumPedersenProof
	Proof1    ChaumPedersenProof
	Challenge group.ElementModQ
}

// PlaintextBallot is a ballot before encryption.
type PlaintextBallot struct {
	BallotID string
	StyleID  string
	Contests []PlaintextBallotContest
}

// PlaintextBallotContest is one contest of a plaintext ballot.
type PlaintextBallotContest struct {
	ContestID     string
	SequenceOrder int
	Selections    []PlaintextBallotSelection
}

// PlaintextBallotSelection is one vote. ExtendedData holds a write-in, if
// any.
type PlaintextBallotSelection struct {
	SelectionID   string
	SequenceOrder int
	Vote          int
	ExtendedData  *string
}
