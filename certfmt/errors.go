package certfmt

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/RuleID rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindParse covers malformed raw certificate bytes (wrong length,
	// unknown type or version, non-BCD digits).
	KindParse Kind = "Parse"

	// KindArgument covers a single field of the wrong shape (length, range,
	// nil), detected eagerly when the value is supplied.
	KindArgument Kind = "Argument"

	// KindReservedBit covers policy bytes using an RFU pattern.
	KindReservedBit Kind = "ReservedBit"

	// KindState covers operations invoked in the wrong order (for example
	// signing with a closed signer).
	KindState Kind = "State"

	// KindConsistency covers cross-field checks that fail when a certificate
	// is finalized (missing signer, all-zero AID, required field unset).
	KindConsistency Kind = "Consistency"

	// KindUnknownParent is reported when a certificate's issuer reference is
	// absent from the trust store.
	KindUnknownParent Kind = "UnknownParent"

	// KindUntrusted is the expected, data-dependent verification failure:
	// signature mismatch, validity window, AID mismatch.
	KindUntrusted Kind = "Untrusted"

	// KindSigning wraps a lower-level failure of an internal or external
	// signer without suppressing its diagnostic detail.
	KindSigning Kind = "Signing"

	KindInternal Kind = "Internal"
)

// Error is the library's structured error type.
//
// RuleID is a stable identifier (e.g., CERT-ARG-001, CERT-RFU-002,
// CERT-TRUST-003) that names the violated invariant or check.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError builds a structured error without a cause.
func NewError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// WrapError builds a structured error around a lower-level cause.
func WrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return NewError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
