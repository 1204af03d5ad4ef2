package record

import "go.dedis.ch/egrecord/group"

// EncryptionDevice identifies a machine that encrypted ballots.
type EncryptionDevice struct {
	DeviceID   uint64
	SessionID  uint64
	LaunchCode uint64
	Location   string
}

// ElectionContext is the key ceremony output shared by all later stages.
type ElectionContext struct {
	NumberOfGuardians      int
	Quorum                 int
	ElGamalPublicKey       group.ElementModP
	ManifestHash           group.UInt256
	CryptoBaseHash         group.UInt256
	CryptoExtendedBaseHash group.UInt256
	CommitmentHash         group.UInt256
	ExtendedData           map[string]string
}
