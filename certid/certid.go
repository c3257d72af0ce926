// Package certid derives stable content identifiers for raw certificate
// bytes. Identifiers are IPFS-compatible CIDv1 (raw + sha2-256) strings,
// usable as audit references and archive keys.
package certid

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ForCertificate returns the CIDv1 string of raw certificate bytes.
func ForCertificate(raw []byte) string {
	sum, err := multihash.Sum(raw, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only errors for invalid inputs; with SHA2_256 and -1
		// length, this should be unreachable.
		return ""
	}
	return cid.NewCidV1(cid.Raw, sum).String()
}

// ForCertificateCID returns the CIDv1 (raw + sha2-256) derived from raw.
func ForCertificateCID(raw []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(raw, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
