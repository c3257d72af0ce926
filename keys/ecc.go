package keys

import (
	"github.com/cloudflare/circl/group"

	"calypsonet.org/certkit/certfmt"
)

// CheckCardPublicKey validates a card subject public key: a 64-byte raw
// (X || Y) point that must lie on the secp256r1 curve.
func CheckCardPublicKey(raw []byte) error {
	if len(raw) != certfmt.ECCPublicKeySize {
		return certfmt.NewError(certfmt.KindArgument, "CERT-ARG-007", "card public key must be 64 bytes")
	}
	// group.P256 unmarshals SEC 1 uncompressed points and rejects
	// coordinates that do not satisfy the curve equation.
	sec1 := make([]byte, 0, 1+certfmt.ECCPublicKeySize)
	sec1 = append(sec1, 0x04)
	sec1 = append(sec1, raw...)
	e := group.P256.NewElement()
	if err := e.UnmarshalBinary(sec1); err != nil {
		return certfmt.WrapError(certfmt.KindArgument, "CERT-ARG-007", "card public key is not on secp256r1", err)
	}
	return nil
}
