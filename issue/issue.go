// Package issue finalizes certificate requests into signed certificates.
//
// A request is a plain configuration record with tagged-presence fields;
// BuildCa and BuildCard are pure functions that perform the cross-field
// consistency checks, invoke the signer and bind the result to the codec.
// Building the same request with the same signer twice yields identical
// bytes: the recovery scheme is deterministic.
//
// Field-shape validation happens eagerly where values are constructed
// (certfmt.NewDate, certfmt.CheckAid, keys.NewInternalSigner); BuildCa and
// BuildCard re-check every field so that a hand-assembled request cannot
// bypass validation.
package issue

import (
	"bytes"
	"crypto/rsa"

	"calypsonet.org/certkit/certfmt"
	"calypsonet.org/certkit/keys"
)

// CaRequest configures a version 1 CA certificate.
//
// CaPublicKey and CaPublicKeyReference identify the subject and are
// mandatory. The validity bounds, AID constraint and policy bytes are
// optional; unset policy bytes default to "not specified" (0x00).
// The truncation behavior of the target AID is carried by bit b0 of
// CaOperatingMode.
type CaRequest struct {
	CaPublicKey          *rsa.PublicKey
	CaPublicKeyReference []byte

	StartDate certfmt.Date
	EndDate   certfmt.Date

	Aid []byte

	CaRights        certfmt.CaRights
	CaScope         certfmt.CaScope
	CaOperatingMode certfmt.OperatingMode
}

// BuildCa checks the request, signs it with the given signer and returns
// the 384-byte certificate. The issuer key reference is taken from the
// signer.
func BuildCa(req *CaRequest, signer keys.CertificateSigner) (*certfmt.CaCertificate, error) {
	if req == nil {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-010", "request is required")
	}
	if signer == nil {
		return nil, certfmt.NewError(certfmt.KindConsistency, "CERT-CONS-002", "a signer is required to build a certificate")
	}
	if req.CaPublicKey == nil {
		return nil, certfmt.NewError(certfmt.KindConsistency, "CERT-CONS-003", "CA public key is not set")
	}
	modulus, err := keys.ModulusBytes(req.CaPublicKey)
	if err != nil {
		return nil, err
	}
	targetRef, err := certfmt.NewKeyReference(req.CaPublicKeyReference)
	if err != nil {
		return nil, err
	}
	if err := req.CaRights.Check(); err != nil {
		return nil, err
	}
	if err := req.CaScope.Check(); err != nil {
		return nil, err
	}
	if err := req.CaOperatingMode.Check(); err != nil {
		return nil, err
	}
	if req.Aid != nil {
		if err := certfmt.CheckAid(req.Aid); err != nil {
			return nil, err
		}
	}
	issuerRef, err := certfmt.NewKeyReference(signer.IssuerPublicKeyReference())
	if err != nil {
		return nil, certfmt.WrapError(certfmt.KindSigning, "CERT-SIGN-002", "signer returned an invalid issuer key reference", err)
	}

	fields := &certfmt.CaFields{
		IssuerKeyRef:  issuerRef,
		TargetKeyRef:  targetRef,
		RsaModulus:    modulus,
		Validity:      certfmt.ValidityPeriod{Start: req.StartDate, End: req.EndDate},
		Aid:           req.Aid,
		Rights:        req.CaRights,
		Scope:         req.CaScope,
		OperatingMode: req.CaOperatingMode,
	}
	raw, err := signFields(fields, signer, certfmt.CaCertificateSize)
	if err != nil {
		return nil, err
	}
	return certfmt.NewCaCertificate(fields, raw)
}

// CardRequest configures a version 1 card certificate.
//
// CardPublicKey (64-byte secp256r1 point), Aid, SerialNumber and
// StartupInfo are mandatory. Index defaults to 0 and differentiates
// certificates issued for the same card under the same issuer key.
type CardRequest struct {
	CardPublicKey []byte

	StartDate certfmt.Date
	EndDate   certfmt.Date

	Aid          []byte
	SerialNumber []byte
	StartupInfo  []byte
	Index        uint32
}

// BuildCard checks the request, signs it with the given signer and returns
// the 316-byte certificate.
func BuildCard(req *CardRequest, signer keys.CertificateSigner) (*certfmt.CardCertificate, error) {
	if req == nil {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-010", "request is required")
	}
	if signer == nil {
		return nil, certfmt.NewError(certfmt.KindConsistency, "CERT-CONS-002", "a signer is required to build a certificate")
	}
	if req.CardPublicKey == nil {
		return nil, certfmt.NewError(certfmt.KindConsistency, "CERT-CONS-003", "card public key is not set")
	}
	if err := keys.CheckCardPublicKey(req.CardPublicKey); err != nil {
		return nil, err
	}
	if req.Aid == nil {
		return nil, certfmt.NewError(certfmt.KindConsistency, "CERT-CONS-003", "card AID is not set")
	}
	if err := certfmt.CheckAid(req.Aid); err != nil {
		return nil, err
	}
	if len(req.SerialNumber) != certfmt.SerialNumberSize {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-005", "serial number must be 8 bytes")
	}
	if len(req.StartupInfo) != certfmt.StartupInfoSize {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-006", "startup info must be 7 bytes")
	}
	issuerRef, err := certfmt.NewKeyReference(signer.IssuerPublicKeyReference())
	if err != nil {
		return nil, certfmt.WrapError(certfmt.KindSigning, "CERT-SIGN-002", "signer returned an invalid issuer key reference", err)
	}

	fields := &certfmt.CardFields{
		IssuerKeyRef: issuerRef,
		Aid:          req.Aid,
		Index:        req.Index,
		Validity:     certfmt.ValidityPeriod{Start: req.StartDate, End: req.EndDate},
	}
	copy(fields.SerialNumber[:], req.SerialNumber)
	copy(fields.StartupInfo[:], req.StartupInfo)
	copy(fields.EccPublicKey[:], req.CardPublicKey)

	raw, err := signFields(fields, signer, certfmt.CardCertificateSize)
	if err != nil {
		return nil, err
	}
	return certfmt.NewCardCertificate(fields, raw)
}

// encoder is the part of a fields struct the signing step needs.
type encoder interface {
	Encode() (data, recoverable []byte, err error)
}

func signFields(f encoder, signer keys.CertificateSigner, wantSize int) ([]byte, error) {
	data, recoverable, err := f.Encode()
	if err != nil {
		return nil, err
	}
	raw, err := signer.GenerateSignedCertificate(data, recoverable)
	if err != nil {
		if certfmt.IsKind(err, certfmt.KindSigning) || certfmt.IsKind(err, certfmt.KindState) {
			return nil, err
		}
		return nil, certfmt.WrapError(certfmt.KindSigning, "CERT-SIGN-001", "certificate signing failed", err)
	}
	if len(raw) != wantSize {
		return nil, certfmt.NewError(certfmt.KindSigning, "CERT-SIGN-002", "signer returned a certificate of the wrong size")
	}
	if !bytes.Equal(raw[:len(data)], data) {
		return nil, certfmt.NewError(certfmt.KindSigning, "CERT-SIGN-002", "signer altered the clear part of the certificate")
	}
	return raw, nil
}
