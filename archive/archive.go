// Package archive stores issued certificate bytes immutably, keyed by their
// content identifier. An archive is an audit trail: a signing daemon can
// record every certificate it produced, and the bytes can later be fetched
// back by the CID recorded in a trust store entry.
package archive

import (
	"sync"

	"github.com/ipfs/go-cid"

	"calypsonet.org/certkit/certid"
)

// Archive is a minimal content-addressable store for certificate bytes.
//
// Contract:
// - Put MUST be idempotent.
// - Stored objects MUST be immutable.
// - CIDs MUST be derived from the bytes written.
// - Get MUST return ErrNotFound when the CID is absent.
type Archive interface {
	Put(raw []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}

// Memory is an in-process Archive, suitable for tests and short-lived
// issuing sessions.
type Memory struct {
	mu      sync.RWMutex
	objects map[cid.Cid][]byte
}

// NewMemory returns an empty in-memory archive.
func NewMemory() *Memory {
	return &Memory{objects: make(map[cid.Cid][]byte)}
}

func (m *Memory) Put(raw []byte) (cid.Cid, error) {
	id, err := certid.ForCertificateCID(raw)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, ErrInvalidCID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.objects[id]; ok {
		if string(existing) != string(raw) {
			return cid.Undef, ErrImmutable
		}
		return id, nil
	}
	m.objects[id] = append([]byte(nil), raw...)
	return id, nil
}

func (m *Memory) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *Memory) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[id]
	return ok
}
