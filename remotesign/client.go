package remotesign

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"calypsonet.org/certkit/certfmt"
)

// Client implements keys.CertificateSigner over the Signer gRPC service.
// The issuer key reference is fetched once when the client is constructed;
// a remote signer's key reference does not change during a connection.
type Client struct {
	cc     *grpc.ClientConn
	client SignerClient
	ref    []byte

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial and key reference fetch when
	// non-zero.
	Timeout time.Duration
}

// Dial connects to a remote signer and fetches its key reference.
func Dial(target string, opts DialOptions) (*Client, error) {
	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	cc, err := grpc.DialContext(ctx, target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, err
	}
	c, err := NewClient(cc)
	if err != nil {
		_ = cc.Close()
		return nil, err
	}
	return c, nil
}

// NewClient wraps an established connection and fetches the remote key
// reference.
func NewClient(cc *grpc.ClientConn) (*Client, error) {
	c := &Client{cc: cc, client: NewSignerClient(cc)}
	reply, err := c.client.KeyReference(context.Background(), &emptypb.Empty{})
	if err != nil {
		return nil, mapRPC(err)
	}
	ref := reply.GetValue()
	if _, err := certfmt.NewKeyReference(ref); err != nil {
		return nil, err
	}
	c.ref = ref
	return c, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// IssuerPublicKeyReference returns the cached 29-byte remote key reference.
func (c *Client) IssuerPublicKeyReference() []byte {
	return append([]byte(nil), c.ref...)
}

// GenerateSignedCertificate asks the remote signer to sign the certificate
// content and returns the complete signed bytes.
func (c *Client) GenerateSignedCertificate(data, recoverable []byte) ([]byte, error) {
	if len(recoverable) != certfmt.RecoverableSize {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-009", "recoverable part must be 222 bytes")
	}
	payload := make([]byte, 0, len(data)+len(recoverable))
	payload = append(payload, data...)
	payload = append(payload, recoverable...)

	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Sign(ctx, wrapperspb.Bytes(payload))
	if err != nil {
		return nil, mapRPC(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
