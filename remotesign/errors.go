package remotesign

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"calypsonet.org/certkit/certfmt"
)

// mapErr translates the library's structured errors into gRPC status codes
// for the server side.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var e *certfmt.Error
	if !errors.As(err, &e) {
		return status.Error(codes.Internal, err.Error())
	}
	switch e.Kind {
	case certfmt.KindArgument, certfmt.KindReservedBit, certfmt.KindParse:
		return status.Error(codes.InvalidArgument, e.Message)
	case certfmt.KindState:
		return status.Error(codes.FailedPrecondition, e.Message)
	case certfmt.KindConsistency:
		return status.Error(codes.FailedPrecondition, e.Message)
	case certfmt.KindSigning:
		return status.Error(codes.Internal, e.Message)
	default:
		return status.Error(codes.Internal, e.Message)
	}
}

// mapRPC translates status codes back into structured errors for the
// client side, so callers can keep branching on certfmt kinds.
func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return certfmt.WrapError(certfmt.KindArgument, "CERT-ARG-011", "remote signer rejected the request", err)
	case codes.FailedPrecondition:
		return certfmt.WrapError(certfmt.KindState, "CERT-STATE-003", "remote signer is not ready", err)
	default:
		return certfmt.WrapError(certfmt.KindSigning, "CERT-SIGN-003", "remote signing failed", err)
	}
}
