package keys

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"

	"calypsonet.org/certkit/certfmt"
)

// ParseRSAPrivateKeyPEM decodes a PEM-encoded RSA private key (PKCS#1 or
// PKCS#8) and checks it against the toolkit's key shape. The input bytes
// are supplied by the caller; this package never touches the filesystem.
func ParseRSAPrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-008", "no PEM block found")
	}
	if priv, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		if err := CheckRSAPrivateKey(priv); err != nil {
			return nil, err
		}
		return priv, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, certfmt.WrapError(certfmt.KindArgument, "CERT-ARG-008", "unreadable RSA private key", err)
	}
	priv, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-008", "PEM block does not contain an RSA key")
	}
	if err := CheckRSAPrivateKey(priv); err != nil {
		return nil, err
	}
	return priv, nil
}

// ParseRSAPublicKeyPEM decodes a PEM-encoded RSA public key (PKIX or
// PKCS#1) and checks its shape.
func ParseRSAPublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-008", "no PEM block found")
	}
	if pub, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		if err := CheckRSAPublicKey(pub); err != nil {
			return nil, err
		}
		return pub, nil
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, certfmt.WrapError(certfmt.KindArgument, "CERT-ARG-008", "unreadable RSA public key", err)
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-008", "PEM block does not contain an RSA key")
	}
	if err := CheckRSAPublicKey(pub); err != nil {
		return nil, err
	}
	return pub, nil
}
