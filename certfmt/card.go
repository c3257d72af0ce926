package certfmt

import (
	"golang.org/x/crypto/cryptobyte"
)

// cardRfuSize pads the recoverable part of the card certificate to 222 bytes.
const cardRfuSize = 143

// CardFields is the decoded content of a version 1 card certificate.
//
// The AID is the autonomous PKI application of the card itself and is
// mandatory; it is matched against the target AID of the issuing CA
// certificate during verification.
type CardFields struct {
	IssuerKeyRef KeyReference
	Aid          []byte
	SerialNumber [SerialNumberSize]byte
	Index        uint32
	Validity     ValidityPeriod
	StartupInfo  [StartupInfoSize]byte
	EccPublicKey [ECCPublicKeySize]byte
	Rfu          [cardRfuSize]byte
}

// Encode serializes the fields into the clear part (60 bytes) and the
// recoverable part (222 bytes) of the certificate.
func (f *CardFields) Encode() (data, recoverable []byte, err error) {
	if err := CheckAid(f.Aid); err != nil {
		return nil, nil, err
	}
	data = make([]byte, 0, CardClearSize)
	data = append(data, CardCertificateType, CertificateVersion)
	data = append(data, f.IssuerKeyRef[:]...)
	data = append(data, byte(len(f.Aid)))
	var aidBlock [AidMaxSize]byte
	copy(aidBlock[:], f.Aid)
	data = append(data, aidBlock[:]...)
	data = append(data, f.SerialNumber[:]...)
	data = append(data,
		byte(f.Index>>24), byte(f.Index>>16), byte(f.Index>>8), byte(f.Index))
	if len(data) != CardClearSize {
		return nil, nil, NewError(KindInternal, "CERT-INT-001", "card clear part size mismatch")
	}

	recoverable = make([]byte, 0, RecoverableSize)
	start := f.Validity.Start.encodeBCD()
	end := f.Validity.End.encodeBCD()
	recoverable = append(recoverable, start[:]...)
	recoverable = append(recoverable, end[:]...)
	recoverable = append(recoverable, f.StartupInfo[:]...)
	recoverable = append(recoverable, f.EccPublicKey[:]...)
	recoverable = append(recoverable, f.Rfu[:]...)
	if len(recoverable) != RecoverableSize {
		return nil, nil, NewError(KindInternal, "CERT-INT-001", "card recoverable part size mismatch")
	}
	return data, recoverable, nil
}

// DecodeCard is the inverse of Encode. Structure checks only; see Validate.
func DecodeCard(data, recoverable []byte) (*CardFields, error) {
	if len(data) != CardClearSize {
		return nil, NewError(KindParse, "CERT-PARSE-001", "card certificate clear part must be 60 bytes")
	}
	if len(recoverable) != RecoverableSize {
		return nil, NewError(KindParse, "CERT-PARSE-001", "card certificate recoverable part must be 222 bytes")
	}

	var f CardFields
	s := cryptobyte.String(data)
	var typ, version, aidSize uint8
	var aidBlock [AidMaxSize]byte
	if !s.ReadUint8(&typ) || !s.ReadUint8(&version) {
		return nil, NewError(KindParse, "CERT-PARSE-001", "truncated card certificate header")
	}
	if typ != CardCertificateType {
		return nil, NewError(KindParse, "CERT-PARSE-002", "not a card certificate")
	}
	if version != CertificateVersion {
		return nil, NewError(KindParse, "CERT-PARSE-003", "unsupported card certificate version")
	}
	if !s.CopyBytes(f.IssuerKeyRef[:]) ||
		!s.ReadUint8(&aidSize) ||
		!s.CopyBytes(aidBlock[:]) ||
		!s.CopyBytes(f.SerialNumber[:]) ||
		!s.ReadUint32(&f.Index) ||
		!s.Empty() {
		return nil, NewError(KindParse, "CERT-PARSE-001", "malformed card certificate clear part")
	}
	if aidSize < AidMinSize || aidSize > AidMaxSize {
		return nil, NewError(KindParse, "CERT-PARSE-005", "card certificate AID size out of range")
	}
	f.Aid = append([]byte(nil), aidBlock[:aidSize]...)

	r := cryptobyte.String(recoverable)
	var startRaw, endRaw [DateSize]byte
	if !r.CopyBytes(startRaw[:]) ||
		!r.CopyBytes(endRaw[:]) ||
		!r.CopyBytes(f.StartupInfo[:]) ||
		!r.CopyBytes(f.EccPublicKey[:]) ||
		!r.CopyBytes(f.Rfu[:]) ||
		!r.Empty() {
		return nil, NewError(KindParse, "CERT-PARSE-001", "malformed card certificate recoverable part")
	}
	var err error
	if f.Validity.Start, err = decodeBCD(startRaw); err != nil {
		return nil, err
	}
	if f.Validity.End, err = decodeBCD(endRaw); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate performs the policy checks that Decode deliberately skips.
func (f *CardFields) Validate() error {
	if err := CheckAid(f.Aid); err != nil {
		return err
	}
	if !isAllZero(f.Rfu[:]) {
		return NewError(KindReservedBit, "CERT-RFU-004", "card certificate RFU bytes must be 0")
	}
	return nil
}

// SplitCardRaw splits a raw 316-byte card certificate into its clear part
// and signature, checking the type and version tags.
func SplitCardRaw(raw []byte) (data, sig []byte, err error) {
	if len(raw) != CardCertificateSize {
		return nil, nil, NewError(KindParse, "CERT-PARSE-001", "card certificate must be 316 bytes")
	}
	if raw[0] != CardCertificateType {
		return nil, nil, NewError(KindParse, "CERT-PARSE-002", "not a card certificate")
	}
	if raw[1] != CertificateVersion {
		return nil, nil, NewError(KindParse, "CERT-PARSE-003", "unsupported card certificate version")
	}
	return raw[:CardClearSize], raw[CardClearSize:], nil
}

// PeekIssuerReference extracts the issuer key reference from the clear part
// of either certificate type without a full decode. Both formats carry the
// reference right after the type and version bytes.
func PeekIssuerReference(data []byte) (KeyReference, error) {
	var ref KeyReference
	if len(data) < 2+KeyReferenceSize {
		return ref, NewError(KindParse, "CERT-PARSE-001", "certificate too short for issuer reference")
	}
	copy(ref[:], data[2:2+KeyReferenceSize])
	return ref, nil
}
