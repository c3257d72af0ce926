package remotesign

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"calypsonet.org/certkit/archive"
	"calypsonet.org/certkit/certfmt"
	"calypsonet.org/certkit/keys"
)

// Server exposes a local signer over the Signer gRPC service. When Archive
// is set, every signed certificate is recorded before it is returned; an
// archive failure fails the call, since the archive is the audit trail.
type Server struct {
	UnimplementedSignerServer
	Signer  keys.CertificateSigner
	Archive archive.Archive
}

func (s *Server) KeyReference(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Signer == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing signer")
	}
	return wrapperspb.Bytes(s.Signer.IssuerPublicKeyReference()), nil
}

func (s *Server) Sign(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Signer == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing signer")
	}
	payload := in.GetValue()
	if len(payload) <= certfmt.RecoverableSize {
		return nil, status.Error(codes.InvalidArgument, "payload must carry a clear part and a 222-byte recoverable part")
	}
	split := len(payload) - certfmt.RecoverableSize
	data, recoverable := payload[:split], payload[split:]

	signed, err := s.Signer.GenerateSignedCertificate(data, recoverable)
	if err != nil {
		return nil, mapErr(err)
	}
	if s.Archive != nil {
		if _, err := s.Archive.Put(signed); err != nil {
			return nil, status.Error(codes.Internal, "archiving signed certificate failed")
		}
	}
	return wrapperspb.Bytes(signed), nil
}
