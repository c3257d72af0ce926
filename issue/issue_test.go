package issue

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"

	"calypsonet.org/certkit/certfmt"
	"calypsonet.org/certkit/keys"
)

var (
	issuerOnce sync.Once
	issuerKey  *rsa.PrivateKey
	subjectKey *rsa.PrivateKey
)

func testIssuer(t *testing.T) (*keys.InternalSigner, *rsa.PublicKey) {
	t.Helper()
	issuerOnce.Do(func() {
		var err error
		if issuerKey, err = rsa.GenerateKey(rand.Reader, 2048); err != nil {
			panic(err)
		}
		if subjectKey, err = rsa.GenerateKey(rand.Reader, 2048); err != nil {
			panic(err)
		}
	})
	signer, err := keys.NewInternalSigner(issuerKey, bytes.Repeat([]byte{0x01}, certfmt.KeyReferenceSize))
	if err != nil {
		t.Fatalf("NewInternalSigner: %v", err)
	}
	return signer, &subjectKey.PublicKey
}

func testCardKey(t *testing.T) []byte {
	t.Helper()
	k, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	raw := make([]byte, certfmt.ECCPublicKeySize)
	k.X.FillBytes(raw[:32])
	k.Y.FillBytes(raw[32:])
	return raw
}

func TestBuildCa(t *testing.T) {
	signer, subject := testIssuer(t)
	start, _ := certfmt.NewDate(2024, 1, 1)
	req := &CaRequest{
		CaPublicKey:          subject,
		CaPublicKeyReference: bytes.Repeat([]byte{0x02}, certfmt.KeyReferenceSize),
		StartDate:            start,
		Aid:                  []byte{0xA0, 0x00, 0x00, 0x02, 0x91},
		CaRights:             certfmt.NewCaRights(certfmt.RightAllowed, certfmt.RightForbidden),
		CaScope:              certfmt.ScopeLimited,
	}
	cert, err := BuildCa(req, signer)
	if err != nil {
		t.Fatalf("BuildCa: %v", err)
	}
	raw := cert.RawData()
	if len(raw) != certfmt.CaCertificateSize {
		t.Fatalf("certificate size: got %d", len(raw))
	}

	f := cert.Fields()
	if !bytes.Equal(f.IssuerKeyRef.Bytes(), signer.IssuerPublicKeyReference()) {
		t.Fatalf("issuer reference mismatch")
	}
	modulus, err := keys.ModulusBytes(subject)
	if err != nil {
		t.Fatalf("ModulusBytes: %v", err)
	}
	if f.RsaModulus != modulus {
		t.Fatalf("subject modulus mismatch")
	}
	if f.Validity.Start != start || !f.Validity.End.IsZero() {
		t.Fatalf("validity mismatch: %+v", f.Validity)
	}

	// The signature recovers against the issuer key.
	data, sig, err := certfmt.SplitCaRaw(raw)
	if err != nil {
		t.Fatalf("SplitCaRaw: %v", err)
	}
	if _, err := keys.RecoverMessage(&issuerKey.PublicKey, data, sig); err != nil {
		t.Fatalf("RecoverMessage: %v", err)
	}
}

func TestBuildCa_Deterministic(t *testing.T) {
	signer, subject := testIssuer(t)
	req := &CaRequest{
		CaPublicKey:          subject,
		CaPublicKeyReference: bytes.Repeat([]byte{0x02}, certfmt.KeyReferenceSize),
	}
	a, err := BuildCa(req, signer)
	if err != nil {
		t.Fatalf("BuildCa: %v", err)
	}
	b, err := BuildCa(req, signer)
	if err != nil {
		t.Fatalf("BuildCa: %v", err)
	}
	if !bytes.Equal(a.RawData(), b.RawData()) {
		t.Fatalf("rebuilding the same request must yield identical bytes")
	}
}

func TestBuildCa_RequiredFields(t *testing.T) {
	signer, subject := testIssuer(t)

	if _, err := BuildCa(nil, signer); !certfmt.IsKind(err, certfmt.KindArgument) {
		t.Fatalf("nil request: got %v", err)
	}
	if _, err := BuildCa(&CaRequest{}, nil); certfmt.RuleID(err) != "CERT-CONS-002" {
		t.Fatalf("nil signer: got %v", err)
	}
	if _, err := BuildCa(&CaRequest{}, signer); certfmt.RuleID(err) != "CERT-CONS-003" {
		t.Fatalf("missing subject key: got %v", err)
	}

	req := &CaRequest{CaPublicKey: subject, CaPublicKeyReference: make([]byte, 5)}
	if _, err := BuildCa(req, signer); !certfmt.IsKind(err, certfmt.KindArgument) {
		t.Fatalf("short reference: got %v", err)
	}

	req = &CaRequest{
		CaPublicKey:          subject,
		CaPublicKeyReference: bytes.Repeat([]byte{0x02}, certfmt.KeyReferenceSize),
		CaRights:             certfmt.CaRights(0b0000_0011),
	}
	if _, err := BuildCa(req, signer); !certfmt.IsKind(err, certfmt.KindReservedBit) {
		t.Fatalf("RFU rights: got %v", err)
	}
}

func TestBuildCard(t *testing.T) {
	signer, _ := testIssuer(t)
	req := &CardRequest{
		CardPublicKey: testCardKey(t),
		Aid:           []byte{0xA0, 0x00, 0x00, 0x02, 0x91, 0x10},
		SerialNumber:  []byte{1, 2, 3, 4, 5, 6, 7, 8},
		StartupInfo:   []byte{0x0A, 0x3C, 0x20, 0x05, 0x14, 0x10, 0x01},
		Index:         7,
	}
	cert, err := BuildCard(req, signer)
	if err != nil {
		t.Fatalf("BuildCard: %v", err)
	}
	if len(cert.RawData()) != certfmt.CardCertificateSize {
		t.Fatalf("certificate size: got %d", len(cert.RawData()))
	}
	if !bytes.Equal(cert.CardPublicKeyData(), req.CardPublicKey) {
		t.Fatalf("card public key mismatch")
	}
	if cert.Fields().Index != 7 {
		t.Fatalf("index mismatch")
	}
}

func TestBuildCard_RequiredFields(t *testing.T) {
	signer, _ := testIssuer(t)
	cardKey := testCardKey(t)

	base := func() *CardRequest {
		return &CardRequest{
			CardPublicKey: cardKey,
			Aid:           []byte{0xA0, 0x00, 0x00, 0x02, 0x91},
			SerialNumber:  []byte{1, 2, 3, 4, 5, 6, 7, 8},
			StartupInfo:   []byte{0x0A, 0x3C, 0x20, 0x05, 0x14, 0x10, 0x01},
		}
	}

	req := base()
	req.CardPublicKey = nil
	if _, err := BuildCard(req, signer); certfmt.RuleID(err) != "CERT-CONS-003" {
		t.Fatalf("missing card key: got %v", err)
	}

	req = base()
	req.Aid = nil
	if _, err := BuildCard(req, signer); certfmt.RuleID(err) != "CERT-CONS-003" {
		t.Fatalf("missing AID: got %v", err)
	}

	req = base()
	req.SerialNumber = req.SerialNumber[:7]
	if _, err := BuildCard(req, signer); certfmt.RuleID(err) != "CERT-ARG-005" {
		t.Fatalf("short serial: got %v", err)
	}

	req = base()
	req.StartupInfo = append(req.StartupInfo, 0x00)
	if _, err := BuildCard(req, signer); certfmt.RuleID(err) != "CERT-ARG-006" {
		t.Fatalf("long startup info: got %v", err)
	}
}

// misbehavingSigner returns bytes that do not embed the clear part it was
// given.
type misbehavingSigner struct {
	ref []byte
	out []byte
}

func (m *misbehavingSigner) IssuerPublicKeyReference() []byte { return m.ref }
func (m *misbehavingSigner) GenerateSignedCertificate(data, recoverable []byte) ([]byte, error) {
	return m.out, nil
}

func TestBuildCa_RejectsMisbehavingSigner(t *testing.T) {
	_, subject := testIssuer(t)
	req := &CaRequest{
		CaPublicKey:          subject,
		CaPublicKeyReference: bytes.Repeat([]byte{0x02}, certfmt.KeyReferenceSize),
	}
	ref := bytes.Repeat([]byte{0x01}, certfmt.KeyReferenceSize)

	wrongSize := &misbehavingSigner{ref: ref, out: make([]byte, 100)}
	if _, err := BuildCa(req, wrongSize); certfmt.RuleID(err) != "CERT-SIGN-002" {
		t.Fatalf("wrong size: got %v", err)
	}

	altered := &misbehavingSigner{ref: ref, out: make([]byte, certfmt.CaCertificateSize)}
	if _, err := BuildCa(req, altered); certfmt.RuleID(err) != "CERT-SIGN-002" {
		t.Fatalf("altered clear part: got %v", err)
	}

	badRef := &misbehavingSigner{ref: make([]byte, 3)}
	if _, err := BuildCa(req, badRef); certfmt.RuleID(err) != "CERT-SIGN-002" {
		t.Fatalf("bad issuer reference: got %v", err)
	}
}
