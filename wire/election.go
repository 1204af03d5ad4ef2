package wire

import (
	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/codec"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/record"
)

type constantsJSON struct {
	Name       string      `json:"name"`
	LargePrime codec.Token `json:"large_prime"`
	SmallPrime codec.Token `json:"small_prime"`
	Cofactor   codec.Token `json:"cofactor"`
	Generator  codec.Token `json:"generator"`
}

// DecodeConstants reads the group constants of a record. They are not
// checked against any group, so that a record can be opened with the group
// it was published with.
func DecodeConstants(data []byte) (group.Constants, error) {
	var cj constantsJSON
	if err := unmarshal(data, &cj); err != nil {
		return group.Constants{}, err
	}
	k := group.Constants{Name: cj.Name, Source: group.FromWire}
	var err error
	if k.LargePrime, err = codec.BigInt("large_prime", cj.LargePrime); err != nil {
		return group.Constants{}, err
	}
	if k.SmallPrime, err = codec.BigInt("small_prime", cj.SmallPrime); err != nil {
		return group.Constants{}, err
	}
	if k.Cofactor, err = codec.BigInt("cofactor", cj.Cofactor); err != nil {
		return group.Constants{}, err
	}
	if k.Generator, err = codec.BigInt("generator", cj.Generator); err != nil {
		return group.Constants{}, err
	}
	return k, nil
}

// EncodeConstants writes the group constants.
func EncodeConstants(k group.Constants) ([]byte, error) {
	return marshal(constantsJSON{
		Name:       k.Name,
		LargePrime: codec.EncodeBigInt(k.LargePrime),
		SmallPrime: codec.EncodeBigInt(k.SmallPrime),
		Cofactor:   codec.EncodeBigInt(k.Cofactor),
		Generator:  codec.EncodeBigInt(k.Generator),
	})
}

type contextJSON struct {
	NumberOfGuardians      int               `json:"number_of_guardians"`
	Quorum                 int               `json:"quorum"`
	ElGamalPublicKey       codec.Token       `json:"elgamal_public_key"`
	ManifestHash           codec.Token       `json:"manifest_hash"`
	CryptoBaseHash         codec.Token       `json:"crypto_base_hash"`
	CryptoExtendedBaseHash codec.Token       `json:"crypto_extended_base_hash"`
	CommitmentHash         codec.Token       `json:"commitment_hash"`
	ExtendedData           map[string]string `json:"extended_data"`
}

// DecodeContext reads the election context.
func DecodeContext(c *codec.Codec, data []byte) (record.ElectionContext, error) {
	var cj contextJSON
	if err := unmarshal(data, &cj); err != nil {
		return record.ElectionContext{}, err
	}
	ec := record.ElectionContext{
		NumberOfGuardians: cj.NumberOfGuardians,
		Quorum:            cj.Quorum,
	}
	if ec.Quorum < 1 || ec.Quorum > ec.NumberOfGuardians {
		return record.ElectionContext{}, egrecord.NewError(egrecord.ErrMalformedInteger, "quorum",
			"quorum %d with %d guardians", ec.Quorum, ec.NumberOfGuardians)
	}
	var err error
	if ec.ElGamalPublicKey, err = c.ModP("elgamal_public_key", cj.ElGamalPublicKey); err != nil {
		return record.ElectionContext{}, err
	}
	digests := []struct {
		field string
		token codec.Token
		dst   *group.UInt256
	}{
		{"manifest_hash", cj.ManifestHash, &ec.ManifestHash},
		{"crypto_base_hash", cj.CryptoBaseHash, &ec.CryptoBaseHash},
		{"crypto_extended_base_hash", cj.CryptoExtendedBaseHash, &ec.CryptoExtendedBaseHash},
		{"commitment_hash", cj.CommitmentHash, &ec.CommitmentHash},
	}
	for _, d := range digests {
		if *d.dst, err = c.Digest(d.field, d.token); err != nil {
			return record.ElectionContext{}, err
		}
	}
	if len(cj.ExtendedData) > 0 {
		ec.ExtendedData = cj.ExtendedData
	}
	return ec, nil
}

// EncodeContext writes the election context.
func EncodeContext(c *codec.Codec, ec record.ElectionContext) ([]byte, error) {
	cj := contextJSON{
		NumberOfGuardians:      ec.NumberOfGuardians,
		Quorum:                 ec.Quorum,
		ElGamalPublicKey:       c.EncodeModP(ec.ElGamalPublicKey),
		ManifestHash:           c.EncodeDigest(ec.ManifestHash),
		CryptoBaseHash:         c.EncodeDigest(ec.CryptoBaseHash),
		CryptoExtendedBaseHash: c.EncodeDigest(ec.CryptoExtendedBaseHash),
		CommitmentHash:         c.EncodeDigest(ec.CommitmentHash),
	}
	if len(ec.ExtendedData) > 0 {
		cj.ExtendedData = ec.ExtendedData
	}
	return marshal(cj)
}

type deviceJSON struct {
	DeviceID   codec.Token `json:"device_id"`
	SessionID  codec.Token `json:"session_id"`
	LaunchCode codec.Token `json:"launch_code"`
	Location   string      `json:"location"`
}

// DecodeEncryptionDevice reads an encryption device.
func DecodeEncryptionDevice(data []byte) (record.EncryptionDevice, error) {
	var dj deviceJSON
	if err := unmarshal(data, &dj); err != nil {
		return record.EncryptionDevice{}, err
	}
	d := record.EncryptionDevice{Location: dj.Location}
	var err error
	if d.DeviceID, err = codec.Uint64("device_id", dj.DeviceID); err != nil {
		return record.EncryptionDevice{}, err
	}
	if d.SessionID, err = codec.Uint64("session_id", dj.SessionID); err != nil {
		return record.EncryptionDevice{}, err
	}
	if d.LaunchCode, err = codec.Uint64("launch_code", dj.LaunchCode); err != nil {
		return record.EncryptionDevice{}, err
	}
	return d, nil
}

// EncodeEncryptionDevice writes an encryption device.
func EncodeEncryptionDevice(d record.EncryptionDevice) ([]byte, error) {
	return marshal(deviceJSON{
		DeviceID:   codec.EncodeUint64(d.DeviceID),
		SessionID:  codec.EncodeUint64(d.SessionID),
		LaunchCode: codec.EncodeUint64(d.LaunchCode),
		Location:   d.Location,
	})
}
