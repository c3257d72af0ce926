// Package keys implements the cryptographic engine of the certificate
// toolkit: RSA-2048 key material checks, the deterministic partial
// message-recovery signature scheme used by both certificate formats, and
// the signer capability consumed by the builders.
//
// Keys are supplied in memory by the caller; this package performs no key
// generation and no storage at rest. Private key material held by an
// internal signer is wiped on Close.
package keys
