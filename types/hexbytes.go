package types

import (
	"encoding/hex"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/vocdoni/ecc-elgamal-sandbox/util"
)

// HexBytes is a []byte which encodes as hexadecimal in json, as opposed to
// the base64 default.
type HexBytes []byte

// HexStringToHexBytes decodes a hex string, with or without the 0x prefix.
func HexStringToHexBytes(s string) (HexBytes, error) {
	b, err := hex.DecodeString(util.TrimHex(s))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex string %q", s)
	}
	return b, nil
}

// String returns the hex representation of b, without prefix.
func (b HexBytes) String() string {
	return hex.EncodeToString(b)
}

// MarshalJSON encodes b as a quoted hex string.
func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON decodes a quoted hex string, accepting an optional 0x
// prefix.
func (b *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := HexStringToHexBytes(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}
