package keys

import (
	"crypto/rsa"

	"calypsonet.org/certkit/certfmt"
)

// rsaPublicExponent is the only exponent accepted anywhere in the toolkit.
const rsaPublicExponent = 65537

// CheckRSAPublicKey validates that pub is a 2048-bit RSA key with public
// exponent 65537.
func CheckRSAPublicKey(pub *rsa.PublicKey) error {
	if pub == nil || pub.N == nil {
		return certfmt.NewError(certfmt.KindArgument, "CERT-ARG-008", "RSA public key is required")
	}
	if pub.N.BitLen() != 2048 {
		return certfmt.NewError(certfmt.KindArgument, "CERT-ARG-008", "RSA key must be 2048 bits")
	}
	if pub.E != rsaPublicExponent {
		return certfmt.NewError(certfmt.KindArgument, "CERT-ARG-008", "RSA public exponent must be 65537")
	}
	return nil
}

// CheckRSAPrivateKey validates the public half of priv.
func CheckRSAPrivateKey(priv *rsa.PrivateKey) error {
	if priv == nil {
		return certfmt.NewError(certfmt.KindArgument, "CERT-ARG-008", "RSA private key is required")
	}
	return CheckRSAPublicKey(&priv.PublicKey)
}

// ModulusBytes returns the 256-byte big-endian modulus of a checked
// 2048-bit key.
func ModulusBytes(pub *rsa.PublicKey) ([certfmt.RSAModulusSize]byte, error) {
	var out [certfmt.RSAModulusSize]byte
	if err := CheckRSAPublicKey(pub); err != nil {
		return out, err
	}
	pub.N.FillBytes(out[:])
	return out, nil
}

// PublicKeyFromModulus rebuilds an *rsa.PublicKey from a certificate's
// 256-byte modulus field; the exponent is fixed by the format.
func PublicKeyFromModulus(modulus []byte) (*rsa.PublicKey, error) {
	if len(modulus) != certfmt.RSAModulusSize {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-008", "RSA modulus must be 256 bytes")
	}
	pub := &rsa.PublicKey{N: newInt(modulus), E: rsaPublicExponent}
	if pub.N.BitLen() != 2048 {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-008", "RSA modulus must be 2048 bits")
	}
	return pub, nil
}

// Wipe zeroes b. Use it on buffers that held private key material.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
