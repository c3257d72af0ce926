package certfmt

import "bytes"

// CheckAid validates the shape of an Application Identifier: 5 to 16 bytes,
// not composed entirely of zero bytes.
func CheckAid(aid []byte) error {
	if len(aid) < AidMinSize || len(aid) > AidMaxSize {
		return NewError(KindArgument, "CERT-ARG-004", "AID must be 5 to 16 bytes")
	}
	if isAllZero(aid) {
		return NewError(KindConsistency, "CERT-CONS-001", "AID must not contain only zero bytes")
	}
	return nil
}

// MatchAid reports whether a card AID satisfies a certificate's target AID
// under the given matching mode.
//
// Exact mode requires equal sizes and full equality. Truncated mode requires
// the card AID to be at least as long as the target and to start with it.
func MatchAid(target []byte, truncationAllowed bool, cardAid []byte) bool {
	if len(target) == 0 {
		// No target AID: the certificate is unconstrained.
		return true
	}
	if truncationAllowed {
		return len(cardAid) >= len(target) && bytes.Equal(cardAid[:len(target)], target)
	}
	return bytes.Equal(cardAid, target)
}

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
