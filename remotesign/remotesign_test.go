package remotesign

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"calypsonet.org/certkit/archive"
	"calypsonet.org/certkit/certfmt"
	"calypsonet.org/certkit/certid"
	"calypsonet.org/certkit/keys"
)

func testSetup(t *testing.T) (*rsa.PrivateKey, *keys.InternalSigner, *archive.Memory, *Client) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	ref := bytes.Repeat([]byte{0x55}, certfmt.KeyReferenceSize)
	signer, err := keys.NewInternalSigner(priv, ref)
	if err != nil {
		t.Fatalf("NewInternalSigner: %v", err)
	}
	store := archive.NewMemory()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterSignerServer(srv, &Server{Signer: signer, Archive: store})
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	client, err := NewClient(cc)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.Timeout = 2 * time.Second
	return priv, signer, store, client
}

func TestRemoteSigner_RoundTrip(t *testing.T) {
	priv, _, store, client := testSetup(t)

	if !bytes.Equal(client.IssuerPublicKeyReference(), bytes.Repeat([]byte{0x55}, certfmt.KeyReferenceSize)) {
		t.Fatalf("key reference mismatch")
	}

	data := bytes.Repeat([]byte{0x91, 0x01}, 30)
	recoverable := make([]byte, certfmt.RecoverableSize)
	for i := range recoverable {
		recoverable[i] = byte(i)
	}

	raw, err := client.GenerateSignedCertificate(data, recoverable)
	if err != nil {
		t.Fatalf("GenerateSignedCertificate: %v", err)
	}
	if !bytes.Equal(raw[:len(data)], data) {
		t.Fatalf("clear part mismatch")
	}
	got, err := keys.RecoverMessage(&priv.PublicKey, data, raw[len(data):])
	if err != nil {
		t.Fatalf("RecoverMessage: %v", err)
	}
	if !bytes.Equal(got, recoverable) {
		t.Fatalf("recovered part mismatch")
	}

	// The daemon archived the signed bytes before returning them.
	id, err := certid.ForCertificateCID(raw)
	if err != nil {
		t.Fatalf("ForCertificateCID: %v", err)
	}
	archived, err := store.Get(id)
	if err != nil {
		t.Fatalf("archive Get: %v", err)
	}
	if !bytes.Equal(archived, raw) {
		t.Fatalf("archived bytes mismatch")
	}
}

func TestRemoteSigner_ShortRecoverablePart(t *testing.T) {
	_, _, _, client := testSetup(t)
	_, err := client.GenerateSignedCertificate([]byte{0x90}, make([]byte, 10))
	if !certfmt.IsKind(err, certfmt.KindArgument) {
		t.Fatalf("expected argument error, got %v", err)
	}
}

func TestRemoteSigner_ClosedSignerMapsToState(t *testing.T) {
	_, signer, _, client := testSetup(t)
	signer.Close()

	data := bytes.Repeat([]byte{0x90}, 40)
	_, err := client.GenerateSignedCertificate(data, make([]byte, certfmt.RecoverableSize))
	if !certfmt.IsKind(err, certfmt.KindState) {
		t.Fatalf("expected state error across the wire, got %v", err)
	}
	if certfmt.RuleID(err) != "CERT-STATE-003" {
		t.Fatalf("unexpected rule: %v", err)
	}
}
