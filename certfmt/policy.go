package certfmt

// AuthRight is the two-bit authentication permission carried twice in the
// CA rights byte: once for card certificates, once for CA certificates.
type AuthRight byte

const (
	RightNotSpecified AuthRight = 0b00
	RightForbidden    AuthRight = 0b01
	RightAllowed      AuthRight = 0b10
	// 0b11 is RFU and rejected by CaRights.Check.
)

// CaRights encodes which certificate types a CA key may authenticate.
//
// Bits b7-b4 are RFU and must be zero. Bits b3-b2 carry the card-certificate
// right, bits b1-b0 the CA-certificate right. The zero value leaves both
// rights unspecified.
type CaRights byte

// NewCaRights packs the card-certificate and CA-certificate rights into a
// rights byte.
func NewCaRights(cardCert, caCert AuthRight) CaRights {
	return CaRights(cardCert&0b11)<<2 | CaRights(caCert&0b11)
}

// Check rejects RFU bit patterns.
func (r CaRights) Check() error {
	if r&0xF0 != 0 {
		return NewError(KindReservedBit, "CERT-RFU-001", "CA rights bits b7-b4 are RFU and must be 0")
	}
	if r.CardCertRight() == 0b11 {
		return NewError(KindReservedBit, "CERT-RFU-001", "CA rights card-certificate pattern %11 is RFU")
	}
	if r.CaCertRight() == 0b11 {
		return NewError(KindReservedBit, "CERT-RFU-001", "CA rights CA-certificate pattern %11 is RFU")
	}
	return nil
}

// CardCertRight returns bits b3-b2.
func (r CaRights) CardCertRight() AuthRight {
	return AuthRight(r>>2) & 0b11
}

// CaCertRight returns bits b1-b0.
func (r CaRights) CaCertRight() AuthRight {
	return AuthRight(r) & 0b11
}

// CaScope restricts the usage context of a CA key pair.
type CaScope byte

const (
	ScopeNotSpecified CaScope = 0x00
	ScopeLimited      CaScope = 0x01 // development, tests, pilots
	ScopeFull         CaScope = 0xFF
)

// Check rejects RFU scope values.
func (s CaScope) Check() error {
	switch s {
	case ScopeNotSpecified, ScopeLimited, ScopeFull:
		return nil
	default:
		return NewError(KindReservedBit, "CERT-RFU-002", "CA scope value is RFU")
	}
}

// OperatingMode controls how the target AID of a CA certificate is matched
// against the AID of a card certificate.
//
// Bits b7-b1 are RFU and must be zero. Bit b0 selects the matching mode:
// 0 forbids truncation (sizes must be equal), 1 allows the card AID to be
// longer than the target AID as long as it starts with it.
type OperatingMode byte

// OperatingModeTruncation sets bit b0, allowing truncated AID matching.
const OperatingModeTruncation OperatingMode = 0x01

// Check rejects RFU bit patterns.
func (m OperatingMode) Check() error {
	if m&0xFE != 0 {
		return NewError(KindReservedBit, "CERT-RFU-003", "operating mode bits b7-b1 are RFU and must be 0")
	}
	return nil
}

// TruncationAllowed reports bit b0.
func (m OperatingMode) TruncationAllowed() bool {
	return m&0x01 != 0
}
