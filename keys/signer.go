package keys

import (
	"crypto/rsa"
	"math/big"
	"sync"

	"calypsonet.org/certkit/certfmt"
)

// CertificateSigner is the capability a builder needs to finalize a
// certificate. It is satisfied by the in-process InternalSigner and by
// external implementations that keep the private key out of the process
// (see the remotesign package for an HSM-style transport).
//
// GenerateSignedCertificate receives the clear part and the 222-byte
// recoverable part and must return the complete certificate bytes: the
// clear part followed by the 256-byte signature embedding the recoverable
// part.
type CertificateSigner interface {
	IssuerPublicKeyReference() []byte
	GenerateSignedCertificate(data, recoverable []byte) ([]byte, error)
}

// InternalSigner signs certificates with an in-memory RSA-2048 private key.
// It must be closed when no longer needed; Close wipes the key material and
// further signing attempts fail.
type InternalSigner struct {
	mu     sync.Mutex
	priv   *rsa.PrivateKey
	ref    certfmt.KeyReference
	closed bool
}

// NewInternalSigner validates the key shape and the 29-byte issuer public
// key reference. The signer keeps the caller's key; the caller must not
// reuse it after Close.
func NewInternalSigner(priv *rsa.PrivateKey, issuerPublicKeyReference []byte) (*InternalSigner, error) {
	if err := CheckRSAPrivateKey(priv); err != nil {
		return nil, err
	}
	ref, err := certfmt.NewKeyReference(issuerPublicKeyReference)
	if err != nil {
		return nil, err
	}
	return &InternalSigner{priv: priv, ref: ref}, nil
}

// IssuerPublicKeyReference returns the 29-byte reference of the issuer key.
func (s *InternalSigner) IssuerPublicKeyReference() []byte {
	return s.ref.Bytes()
}

// GenerateSignedCertificate signs data||recoverable and returns the full
// certificate bytes.
func (s *InternalSigner) GenerateSignedCertificate(data, recoverable []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, certfmt.NewError(certfmt.KindState, "CERT-STATE-001", "signer is closed")
	}
	sig, err := SignRecovery(s.priv, data, recoverable)
	if err != nil {
		if certfmt.IsKind(err, certfmt.KindArgument) {
			return nil, err
		}
		return nil, certfmt.WrapError(certfmt.KindSigning, "CERT-SIGN-001", "internal signing failed", err)
	}
	out := make([]byte, 0, len(data)+len(sig))
	out = append(out, data...)
	out = append(out, sig...)
	return out, nil
}

// Close wipes the private key material. Safe to call more than once.
func (s *InternalSigner) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	wipeKey(s.priv)
	s.priv = nil
}

func wipeKey(priv *rsa.PrivateKey) {
	if priv == nil {
		return
	}
	zeroInt(priv.D)
	for _, p := range priv.Primes {
		zeroInt(p)
	}
	zeroInt(priv.Precomputed.Dp)
	zeroInt(priv.Precomputed.Dq)
	zeroInt(priv.Precomputed.Qinv)
}

func zeroInt(v *big.Int) {
	if v == nil {
		return
	}
	v.SetInt64(0)
}
