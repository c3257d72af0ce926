package truststore

import (
	"time"

	"calypsonet.org/certkit/certfmt"
	"calypsonet.org/certkit/keys"
)

// VerifyCaCertificate authenticates a raw CA certificate against the store
// at the given instant and returns its complete decoded content.
//
// On failure the error is structured: the Kind distinguishes an unknown
// issuer from an untrusted certificate, and the RuleID names the check that
// failed (signature, validity window, reserved bits, issuer rights).
func (s *Store) VerifyCaCertificate(raw []byte, now time.Time) (certfmt.CaFields, error) {
	var zero certfmt.CaFields
	data, sig, err := certfmt.SplitCaRaw(raw)
	if err != nil {
		return zero, err
	}
	parent, err := s.resolveIssuer(data)
	if err != nil {
		return zero, err
	}
	recovered, err := keys.RecoverMessage(parent.pub, data, sig)
	if err != nil {
		return zero, err
	}
	fields, err := certfmt.DecodeCa(data, recovered)
	if err != nil {
		return zero, err
	}
	if err := fields.Validate(); err != nil {
		return zero, err
	}
	if parent.fields != nil && parent.fields.Rights.CaCertRight() == certfmt.RightForbidden {
		return zero, certfmt.NewError(certfmt.KindUntrusted, "CERT-TRUST-006", "issuer is not allowed to authenticate CA certificates")
	}
	if err := checkValidity(fields.Validity, now); err != nil {
		return zero, err
	}
	out := *fields
	if fields.Aid != nil {
		out.Aid = append([]byte(nil), fields.Aid...)
	}
	return out, nil
}

// VerifyCardCertificate authenticates a raw card certificate against the
// store at the given instant and returns its decoded content, including the
// 64-byte card public key the consuming transaction protocol needs.
//
// Beyond the signature and validity window, the card certificate must
// satisfy the constraints of the issuing CA certificate: the card AID must
// match the CA's target AID under the CA's operating mode, and the CA must
// hold the card-certificate authentication right.
func (s *Store) VerifyCardCertificate(raw []byte, now time.Time) (certfmt.CardFields, error) {
	var zero certfmt.CardFields
	data, sig, err := certfmt.SplitCardRaw(raw)
	if err != nil {
		return zero, err
	}
	parent, err := s.resolveIssuer(data)
	if err != nil {
		return zero, err
	}
	recovered, err := keys.RecoverMessage(parent.pub, data, sig)
	if err != nil {
		return zero, err
	}
	fields, err := certfmt.DecodeCard(data, recovered)
	if err != nil {
		return zero, err
	}
	if err := fields.Validate(); err != nil {
		return zero, err
	}
	if err := keys.CheckCardPublicKey(fields.EccPublicKey[:]); err != nil {
		return zero, certfmt.WrapError(certfmt.KindUntrusted, "CERT-TRUST-007", "card public key is not on secp256r1", err)
	}
	if err := checkValidity(fields.Validity, now); err != nil {
		return zero, err
	}
	if parent.fields != nil {
		if parent.fields.Rights.CardCertRight() == certfmt.RightForbidden {
			return zero, certfmt.NewError(certfmt.KindUntrusted, "CERT-TRUST-006", "issuer is not allowed to authenticate card certificates")
		}
		if !certfmt.MatchAid(parent.fields.Aid, parent.fields.OperatingMode.TruncationAllowed(), fields.Aid) {
			return zero, certfmt.NewError(certfmt.KindUntrusted, "CERT-TRUST-005", "card AID does not match the issuer's target AID")
		}
	}
	out := *fields
	out.Aid = append([]byte(nil), fields.Aid...)
	return out, nil
}

func (s *Store) resolveIssuer(data []byte) (*Entry, error) {
	issuerRef, err := certfmt.PeekIssuerReference(data)
	if err != nil {
		return nil, err
	}
	parent, ok := s.lookupRef(issuerRef)
	if !ok {
		return nil, certfmt.NewError(certfmt.KindUnknownParent, "CERT-TRUST-001", "issuer reference not found in store")
	}
	return parent, nil
}

func checkValidity(p certfmt.ValidityPeriod, now time.Time) error {
	if p.Contains(now) {
		return nil
	}
	if p.Expired(now) {
		return certfmt.NewError(certfmt.KindUntrusted, "CERT-TRUST-004", "certificate has expired")
	}
	return certfmt.NewError(certfmt.KindUntrusted, "CERT-TRUST-003", "certificate is not yet valid")
}
