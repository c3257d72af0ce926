package certfmt

import "bytes"

// CaCertificate is a signed, immutable CA certificate as produced by a
// builder or accepted by the trust store. The recoverable fields are already
// materialized, so Fields carries the complete content.
type CaCertificate struct {
	fields CaFields
	raw    []byte
}

// NewCaCertificate binds decoded fields to their raw 384-byte form. The raw
// clear part must match the encoding of the fields.
func NewCaCertificate(fields *CaFields, raw []byte) (*CaCertificate, error) {
	data, _, err := SplitCaRaw(raw)
	if err != nil {
		return nil, err
	}
	enc, _, err := fields.Encode()
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(enc, data) {
		return nil, NewError(KindConsistency, "CERT-CONS-004", "raw bytes do not match certificate fields")
	}
	return &CaCertificate{fields: cloneCaFields(fields), raw: append([]byte(nil), raw...)}, nil
}

// Fields returns a copy of the certificate content.
func (c *CaCertificate) Fields() CaFields {
	return cloneCaFields(&c.fields)
}

// RawData returns a copy of the certificate as it is stored in the card.
func (c *CaCertificate) RawData() []byte {
	return append([]byte(nil), c.raw...)
}

// CardCertificate is a signed, immutable card certificate.
type CardCertificate struct {
	fields CardFields
	raw    []byte
}

// NewCardCertificate binds decoded fields to their raw 316-byte form.
func NewCardCertificate(fields *CardFields, raw []byte) (*CardCertificate, error) {
	data, _, err := SplitCardRaw(raw)
	if err != nil {
		return nil, err
	}
	enc, _, err := fields.Encode()
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(enc, data) {
		return nil, NewError(KindConsistency, "CERT-CONS-004", "raw bytes do not match certificate fields")
	}
	return &CardCertificate{fields: cloneCardFields(fields), raw: append([]byte(nil), raw...)}, nil
}

// Fields returns a copy of the certificate content.
func (c *CardCertificate) Fields() CardFields {
	return cloneCardFields(&c.fields)
}

// RawData returns a copy of the certificate as it is stored in the card.
func (c *CardCertificate) RawData() []byte {
	return append([]byte(nil), c.raw...)
}

// CardPublicKeyData returns the 64-byte raw secp256r1 point of the card.
func (c *CardCertificate) CardPublicKeyData() []byte {
	return append([]byte(nil), c.fields.EccPublicKey[:]...)
}

func cloneCaFields(f *CaFields) CaFields {
	out := *f
	if f.Aid != nil {
		out.Aid = append([]byte(nil), f.Aid...)
	}
	return out
}

func cloneCardFields(f *CardFields) CardFields {
	out := *f
	if f.Aid != nil {
		out.Aid = append([]byte(nil), f.Aid...)
	}
	return out
}
