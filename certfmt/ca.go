package certfmt

import (
	"golang.org/x/crypto/cryptobyte"
)

// caRfuSize pads the clear part of the CA certificate to 128 bytes.
const caRfuSize = 6

// caModulusClearSize is the prefix of the subject RSA modulus carried in
// clear; the remaining 222 bytes are recovered from the signature.
const caModulusClearSize = 34

// CaFields is the decoded content of a version 1 CA certificate.
//
// Aid is nil when the certificate is unconstrained. Rfu bytes are preserved
// by the codec so that foreign certificates survive a decode/encode round
// trip; Validate rejects non-zero values.
type CaFields struct {
	IssuerKeyRef  KeyReference
	TargetKeyRef  KeyReference
	RsaModulus    [RSAModulusSize]byte
	Validity      ValidityPeriod
	Aid           []byte
	Rights        CaRights
	Scope         CaScope
	OperatingMode OperatingMode
	Rfu           [caRfuSize]byte
}

// Encode serializes the fields into the clear part (128 bytes) and the
// recoverable part (222 bytes) of the certificate.
func (f *CaFields) Encode() (data, recoverable []byte, err error) {
	if f.Aid != nil {
		if err := CheckAid(f.Aid); err != nil {
			return nil, nil, err
		}
	}
	data = make([]byte, 0, CaClearSize)
	data = append(data, CaCertificateType, CertificateVersion)
	data = append(data, f.IssuerKeyRef[:]...)
	data = append(data, f.TargetKeyRef[:]...)
	start := f.Validity.Start.encodeBCD()
	end := f.Validity.End.encodeBCD()
	data = append(data, start[:]...)
	data = append(data, end[:]...)
	data = append(data, byte(f.Rights), byte(f.Scope))
	data = append(data, byte(len(f.Aid)))
	var aidBlock [AidMaxSize]byte
	copy(aidBlock[:], f.Aid)
	data = append(data, aidBlock[:]...)
	data = append(data, byte(f.OperatingMode))
	data = append(data, f.Rfu[:]...)
	data = append(data, f.RsaModulus[:caModulusClearSize]...)
	if len(data) != CaClearSize {
		return nil, nil, NewError(KindInternal, "CERT-INT-001", "CA clear part size mismatch")
	}
	recoverable = make([]byte, RecoverableSize)
	copy(recoverable, f.RsaModulus[caModulusClearSize:])
	return data, recoverable, nil
}

// DecodeCa is the inverse of Encode. It checks structure only (lengths, type
// and version tags, BCD digits, AID size bounds); policy validation is left
// to Validate so that foreign reserved patterns survive a round trip.
func DecodeCa(data, recoverable []byte) (*CaFields, error) {
	if len(data) != CaClearSize {
		return nil, NewError(KindParse, "CERT-PARSE-001", "CA certificate clear part must be 128 bytes")
	}
	if len(recoverable) != RecoverableSize {
		return nil, NewError(KindParse, "CERT-PARSE-001", "CA certificate recoverable part must be 222 bytes")
	}

	var f CaFields
	s := cryptobyte.String(data)
	var typ, version uint8
	if !s.ReadUint8(&typ) || !s.ReadUint8(&version) {
		return nil, NewError(KindParse, "CERT-PARSE-001", "truncated CA certificate header")
	}
	if typ != CaCertificateType {
		return nil, NewError(KindParse, "CERT-PARSE-002", "not a CA certificate")
	}
	if version != CertificateVersion {
		return nil, NewError(KindParse, "CERT-PARSE-003", "unsupported CA certificate version")
	}

	var startRaw, endRaw [DateSize]byte
	var aidSize uint8
	var aidBlock [AidMaxSize]byte
	var rights, scope, opMode uint8
	if !s.CopyBytes(f.IssuerKeyRef[:]) ||
		!s.CopyBytes(f.TargetKeyRef[:]) ||
		!s.CopyBytes(startRaw[:]) ||
		!s.CopyBytes(endRaw[:]) ||
		!s.ReadUint8(&rights) ||
		!s.ReadUint8(&scope) ||
		!s.ReadUint8(&aidSize) ||
		!s.CopyBytes(aidBlock[:]) ||
		!s.ReadUint8(&opMode) ||
		!s.CopyBytes(f.Rfu[:]) ||
		!s.CopyBytes(f.RsaModulus[:caModulusClearSize]) ||
		!s.Empty() {
		return nil, NewError(KindParse, "CERT-PARSE-001", "malformed CA certificate clear part")
	}
	copy(f.RsaModulus[caModulusClearSize:], recoverable)

	var err error
	if f.Validity.Start, err = decodeBCD(startRaw); err != nil {
		return nil, err
	}
	if f.Validity.End, err = decodeBCD(endRaw); err != nil {
		return nil, err
	}
	f.Rights = CaRights(rights)
	f.Scope = CaScope(scope)
	f.OperatingMode = OperatingMode(opMode)
	if aidSize > 0 {
		if aidSize < AidMinSize || aidSize > AidMaxSize {
			return nil, NewError(KindParse, "CERT-PARSE-005", "CA certificate AID size out of range")
		}
		f.Aid = append([]byte(nil), aidBlock[:aidSize]...)
	}
	return &f, nil
}

// Validate performs the policy checks that Decode deliberately skips:
// reserved bits, scope values, AID content and RFU padding.
func (f *CaFields) Validate() error {
	if err := f.Rights.Check(); err != nil {
		return err
	}
	if err := f.Scope.Check(); err != nil {
		return err
	}
	if err := f.OperatingMode.Check(); err != nil {
		return err
	}
	if f.Aid != nil {
		if err := CheckAid(f.Aid); err != nil {
			return err
		}
	}
	if !isAllZero(f.Rfu[:]) {
		return NewError(KindReservedBit, "CERT-RFU-004", "CA certificate RFU bytes must be 0")
	}
	return nil
}

// SplitCaRaw splits a raw 384-byte CA certificate into its clear part and
// signature, checking the type and version tags.
func SplitCaRaw(raw []byte) (data, sig []byte, err error) {
	if len(raw) != CaCertificateSize {
		return nil, nil, NewError(KindParse, "CERT-PARSE-001", "CA certificate must be 384 bytes")
	}
	if raw[0] != CaCertificateType {
		return nil, nil, NewError(KindParse, "CERT-PARSE-002", "not a CA certificate")
	}
	if raw[1] != CertificateVersion {
		return nil, nil, NewError(KindParse, "CERT-PARSE-003", "unsupported CA certificate version")
	}
	return raw[:CaClearSize], raw[CaClearSize:], nil
}
