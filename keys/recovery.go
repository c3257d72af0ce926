package keys

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/subtle"
	"math/big"

	"calypsonet.org/certkit/certfmt"
)

// The partial message-recovery scheme (ISO/IEC 9796-2 style, SHA-256):
//
//	block = 0x6A || M1 || SHA-256(data || M1) || 0xBC
//
// where M1 is the 222-byte recoverable part and data the clear part of the
// certificate. The block is exponentiated with the private key and the
// signature is min(s, n-s). Verification exponentiates with the public key,
// restores the block orientation from the trailing nibble, extracts M1 and
// recomputes the hash. The scheme is deterministic: signing the same content
// twice yields identical bytes.
const (
	recoveryHeader  byte = 0x6A
	recoveryTrailer byte = 0xBC
)

// SignRecovery computes the 256-byte recovery signature over the clear and
// recoverable parts. The recoverable part must be exactly 222 bytes so that
// the block fills the modulus.
func SignRecovery(priv *rsa.PrivateKey, data, recoverable []byte) ([]byte, error) {
	if err := CheckRSAPrivateKey(priv); err != nil {
		return nil, err
	}
	if len(recoverable) != certfmt.RecoverableSize {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-009", "recoverable part must be 222 bytes")
	}
	block := buildBlock(data, recoverable)

	m := newInt(block)
	if m.Cmp(priv.N) >= 0 {
		// Unreachable for a 2048-bit modulus: the block's top byte is 0x6A.
		return nil, certfmt.NewError(certfmt.KindInternal, "CERT-INT-002", "recovery block exceeds modulus")
	}
	s := new(big.Int).Exp(m, priv.D, priv.N)
	alt := new(big.Int).Sub(priv.N, s)
	if alt.Cmp(s) < 0 {
		s = alt
	}
	sig := make([]byte, certfmt.SignatureSize)
	s.FillBytes(sig)
	return sig, nil
}

// RecoverMessage verifies sig over data with the issuer's public key and
// returns the recovered 222-byte embedded part. Any mismatch is reported as
// an untrusted-certificate failure, not a panic path.
func RecoverMessage(pub *rsa.PublicKey, data, sig []byte) ([]byte, error) {
	if err := CheckRSAPublicKey(pub); err != nil {
		return nil, err
	}
	if len(sig) != certfmt.SignatureSize {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-009", "signature must be 256 bytes")
	}
	s := newInt(sig)
	if s.Sign() == 0 || s.Cmp(pub.N) >= 0 {
		return nil, certfmt.NewError(certfmt.KindUntrusted, "CERT-TRUST-002", "signature out of range")
	}
	t := new(big.Int).Exp(s, big.NewInt(rsaPublicExponent), pub.N)
	if t.Bit(3) != 1 || t.Bit(2) != 1 || t.Bit(1) != 0 || t.Bit(0) != 0 {
		// The signer emitted min(s, n-s); restore the block orientation.
		t.Sub(pub.N, t)
	}
	block := make([]byte, certfmt.SignatureSize)
	t.FillBytes(block)

	if block[0] != recoveryHeader || block[len(block)-1] != recoveryTrailer {
		return nil, certfmt.NewError(certfmt.KindUntrusted, "CERT-TRUST-002", "signature verification failed")
	}
	recovered := block[1 : 1+certfmt.RecoverableSize]
	digest := block[1+certfmt.RecoverableSize : len(block)-1]

	h := sha256.New()
	h.Write(data)
	h.Write(recovered)
	if subtle.ConstantTimeCompare(digest, h.Sum(nil)) != 1 {
		return nil, certfmt.NewError(certfmt.KindUntrusted, "CERT-TRUST-002", "signature verification failed")
	}
	return append([]byte(nil), recovered...), nil
}

func buildBlock(data, recoverable []byte) []byte {
	h := sha256.New()
	h.Write(data)
	h.Write(recoverable)
	block := make([]byte, 0, certfmt.SignatureSize)
	block = append(block, recoveryHeader)
	block = append(block, recoverable...)
	block = h.Sum(block)
	block = append(block, recoveryTrailer)
	return block
}

func newInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
