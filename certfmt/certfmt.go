// Package certfmt implements the fixed-size binary formats of the Calypso
// Prime PKI certificate infrastructure: the 384-byte CA certificate and the
// 316-byte card certificate, together with the field primitives they share
// (BCD dates, policy bytes, AID constraints, key references).
//
// Both formats place a fixed prefix of the certificate content in clear and
// embed the remainder inside the trailing RSA signature; the embedded part is
// reconstructed during signature verification (see the keys package). The
// codecs in this package therefore operate on the (clear, recoverable) pair,
// not on the raw bytes alone.
package certfmt

import "encoding/hex"

// Sizes and tags of the v1 certificate formats. These are wire-format
// constants; changing any of them breaks compatibility with issued
// certificates.
const (
	KeyReferenceSize = 29
	RSAModulusSize   = 256
	SignatureSize    = 256
	ECCPublicKeySize = 64
	SerialNumberSize = 8
	StartupInfoSize  = 7
	DateSize         = 4

	AidMinSize = 5
	AidMaxSize = 16

	// CA certificate: 128 bytes in clear, 222 recovered from the signature.
	CaCertificateSize = 384
	CaClearSize       = 128

	// Card certificate: 60 bytes in clear, 222 recovered from the signature.
	CardCertificateSize = 316
	CardClearSize       = 60

	// RecoverableSize is the number of content bytes embedded in the
	// 256-byte signature by the partial-recovery scheme.
	RecoverableSize = 222

	CaCertificateType   byte = 0x90
	CardCertificateType byte = 0x91
	CertificateVersion  byte = 0x01
)

// KeyReference identifies a public key within a certificate infrastructure.
// References are opaque; the store only compares them for equality.
type KeyReference [KeyReferenceSize]byte

// NewKeyReference copies a 29-byte reference.
func NewKeyReference(b []byte) (KeyReference, error) {
	var r KeyReference
	if len(b) != KeyReferenceSize {
		return r, NewError(KindArgument, "CERT-ARG-001", "key reference must be 29 bytes")
	}
	copy(r[:], b)
	return r, nil
}

// Bytes returns a copy of the reference.
func (r KeyReference) Bytes() []byte {
	out := make([]byte, KeyReferenceSize)
	copy(out, r[:])
	return out
}

func (r KeyReference) String() string {
	return hex.EncodeToString(r[:])
}
