package elgamal

import (
	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"
)

// MarshalCBOR serializes the Ciphertext to CBOR, as a byte string holding
// the output of Serialize.
func (z *Ciphertext) MarshalCBOR() ([]byte, error) {
	data, err := z.Serialize()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(data)
}

// UnmarshalCBOR deserializes the Ciphertext from CBOR.
func (z *Ciphertext) UnmarshalCBOR(buf []byte) error {
	var data []byte
	if err := cbor.Unmarshal(buf, &data); err != nil {
		return errors.Wrap(err, "failed to unmarshal ciphertext container")
	}
	return z.Deserialize(data)
}
