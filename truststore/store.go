// Package truststore maintains the forest of trusted public keys of a
// certificate infrastructure: PCA root keys at depth 0 and CA certificates
// below them, each entry verified against its parent before insertion.
//
// Insertion order must follow the trust chain root to leaf; the store never
// attempts out-of-order resolution. This keeps every insertion to a single
// parent lookup.
//
// A Store is safe for concurrent use: readers proceed against published
// entries while insertions are serialized behind a write lock. Entries are
// never mutated after publication.
package truststore

import (
	"crypto/rsa"
	"sync"

	"calypsonet.org/certkit/certfmt"
	"calypsonet.org/certkit/certid"
	"calypsonet.org/certkit/keys"
)

// Entry is a trusted public key in the store: either a PCA root or a
// verified CA certificate. Entries are immutable once returned.
type Entry struct {
	ref    certfmt.KeyReference
	pub    *rsa.PublicKey
	priv   *rsa.PrivateKey
	depth  int
	fields *certfmt.CaFields // nil for PCA roots
	raw    []byte            // nil for PCA roots
	cid    string            // "" for PCA roots
}

// Reference returns the 29-byte public key reference.
func (e *Entry) Reference() certfmt.KeyReference { return e.ref }

// PublicKey returns the RSA public key of the entry.
func (e *Entry) PublicKey() *rsa.PublicKey { return e.pub }

// Depth is the distance in issuance hops from the PCA root.
func (e *Entry) Depth() int { return e.depth }

// Certificate returns the certificate content for non-root entries.
func (e *Entry) Certificate() (certfmt.CaFields, bool) {
	if e.fields == nil {
		return certfmt.CaFields{}, false
	}
	f := *e.fields
	if e.fields.Aid != nil {
		f.Aid = append([]byte(nil), e.fields.Aid...)
	}
	return f, true
}

// RawData returns a copy of the raw certificate bytes, or nil for roots.
func (e *Entry) RawData() []byte {
	if e.raw == nil {
		return nil
	}
	return append([]byte(nil), e.raw...)
}

// ContentID is the CIDv1 of the raw certificate bytes, or "" for roots.
func (e *Entry) ContentID() string { return e.cid }

// PrivateKey returns the private key associated with the entry, if one was
// supplied at insertion. Entries with a private key allow the store to act
// as an issuing store.
func (e *Entry) PrivateKey() (*rsa.PrivateKey, bool) {
	return e.priv, e.priv != nil
}

// Store is a set of trust entries keyed by public key reference.
type Store struct {
	mu      sync.RWMutex
	entries map[certfmt.KeyReference]*Entry
}

// New returns an empty store. Each store is an independent trust domain;
// nothing in this package is process-global.
func New() *Store {
	return &Store{entries: make(map[certfmt.KeyReference]*Entry)}
}

// AddPcaPublicKey inserts a Primary CA root key at depth 0, without
// verification. The reference must not already be present.
func (s *Store) AddPcaPublicKey(reference []byte, pub *rsa.PublicKey) (*Entry, error) {
	return s.addRoot(reference, pub, nil)
}

// AddPcaKeyPair inserts a PCA root key together with its private key,
// making the root usable for issuing.
func (s *Store) AddPcaKeyPair(reference []byte, pub *rsa.PublicKey, priv *rsa.PrivateKey) (*Entry, error) {
	if priv == nil {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-008", "RSA private key is required")
	}
	return s.addRoot(reference, pub, priv)
}

func (s *Store) addRoot(reference []byte, pub *rsa.PublicKey, priv *rsa.PrivateKey) (*Entry, error) {
	ref, err := certfmt.NewKeyReference(reference)
	if err != nil {
		return nil, err
	}
	if err := keys.CheckRSAPublicKey(pub); err != nil {
		return nil, err
	}
	if priv != nil {
		if err := checkKeyPair(pub, priv); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[ref]; exists {
		return nil, certfmt.NewError(certfmt.KindState, "CERT-STATE-002", "public key reference already present")
	}
	e := &Entry{ref: ref, pub: pub, priv: priv, depth: 0}
	s.entries[ref] = e
	return e, nil
}

// AddCaCertificate verifies a built CA certificate against its issuer in
// the store and inserts it at the issuer's depth plus one. priv may be nil;
// when supplied it must correspond to the certificate's subject key.
func (s *Store) AddCaCertificate(cert *certfmt.CaCertificate, priv *rsa.PrivateKey) (*Entry, error) {
	if cert == nil {
		return nil, certfmt.NewError(certfmt.KindArgument, "CERT-ARG-010", "certificate is required")
	}
	return s.AddCaCertificateBytes(cert.RawData(), priv)
}

// AddCaCertificateBytes is AddCaCertificate for raw 384-byte input.
//
// The call fails without mutating the store when the issuer reference is
// unknown, the signature does not verify against the issuer key, the
// certificate content is invalid, or the subject reference already exists.
func (s *Store) AddCaCertificateBytes(raw []byte, priv *rsa.PrivateKey) (*Entry, error) {
	data, sig, err := certfmt.SplitCaRaw(raw)
	if err != nil {
		return nil, err
	}
	issuerRef, err := certfmt.PeekIssuerReference(data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.entries[issuerRef]
	if !ok {
		return nil, certfmt.NewError(certfmt.KindUnknownParent, "CERT-TRUST-001", "issuer reference not found in store")
	}
	recovered, err := keys.RecoverMessage(parent.pub, data, sig)
	if err != nil {
		return nil, err
	}
	fields, err := certfmt.DecodeCa(data, recovered)
	if err != nil {
		return nil, err
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if parent.fields != nil && parent.fields.Rights.CaCertRight() == certfmt.RightForbidden {
		return nil, certfmt.NewError(certfmt.KindUntrusted, "CERT-TRUST-006", "issuer is not allowed to authenticate CA certificates")
	}
	if _, exists := s.entries[fields.TargetKeyRef]; exists {
		return nil, certfmt.NewError(certfmt.KindState, "CERT-STATE-002", "subject key reference already present")
	}
	pub, err := keys.PublicKeyFromModulus(fields.RsaModulus[:])
	if err != nil {
		return nil, err
	}
	if priv != nil {
		if err := checkKeyPair(pub, priv); err != nil {
			return nil, err
		}
	}

	e := &Entry{
		ref:    fields.TargetKeyRef,
		pub:    pub,
		priv:   priv,
		depth:  parent.depth + 1,
		fields: fields,
		raw:    append([]byte(nil), raw...),
		cid:    certid.ForCertificate(raw),
	}
	s.entries[e.ref] = e
	return e, nil
}

// Lookup resolves a key reference to its entry.
func (s *Store) Lookup(reference []byte) (*Entry, bool) {
	ref, err := certfmt.NewKeyReference(reference)
	if err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[ref]
	return e, ok
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) lookupRef(ref certfmt.KeyReference) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[ref]
	return e, ok
}

func checkKeyPair(pub *rsa.PublicKey, priv *rsa.PrivateKey) error {
	if err := keys.CheckRSAPrivateKey(priv); err != nil {
		return err
	}
	if priv.N.Cmp(pub.N) != 0 || priv.E != pub.E {
		return certfmt.NewError(certfmt.KindArgument, "CERT-ARG-010", "private key does not correspond to the public key")
	}
	return nil
}
