package archive

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"calypsonet.org/certkit/certid"
)

func testArchives(t *testing.T) map[string]Archive {
	t.Helper()
	fs, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return map[string]Archive{
		"memory":  NewMemory(),
		"localfs": fs,
	}
}

func TestArchive_Conformance(t *testing.T) {
	for name, a := range testArchives(t) {
		t.Run(name, func(t *testing.T) {
			raw := bytes.Repeat([]byte{0x90, 0x01}, 192)

			id, err := a.Put(raw)
			if err != nil {
				t.Fatalf("Put: %v", err)
			}
			if !id.Defined() {
				t.Fatalf("expected defined CID")
			}
			want, err := certid.ForCertificateCID(raw)
			if err != nil {
				t.Fatalf("ForCertificateCID: %v", err)
			}
			if id != want {
				t.Fatalf("CID must be derived from the bytes")
			}

			// Idempotent.
			again, err := a.Put(raw)
			if err != nil {
				t.Fatalf("second Put: %v", err)
			}
			if again != id {
				t.Fatalf("idempotent Put must return the same CID")
			}

			if !a.Has(id) {
				t.Fatalf("Has: expected true")
			}
			got, err := a.Get(id)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !bytes.Equal(got, raw) {
				t.Fatalf("payload mismatch")
			}

			otherID, err := certid.ForCertificateCID([]byte("absent"))
			if err != nil {
				t.Fatalf("ForCertificateCID: %v", err)
			}
			if a.Has(otherID) {
				t.Fatalf("Has: expected false for absent CID")
			}
			if _, err := a.Get(otherID); !IsNotFound(err) {
				t.Fatalf("Get absent: got %v", err)
			}
		})
	}
}

func TestFS_DetectsCorruptedObject(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	raw := []byte("certificate bytes")
	id, err := fs.Put(raw)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	path := fs.pathFor(id)
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	if err := os.WriteFile(path, []byte("tampered"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := fs.Get(id); !errors.Is(err, ErrCIDMismatch) {
		t.Fatalf("Get corrupted: got %v", err)
	}
}

func TestMemory_RejectsCollidingMutation(t *testing.T) {
	m := NewMemory()
	raw := []byte("immutable")
	if _, err := m.Put(raw); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// Same CID can only ever map to the same bytes; mutate the stored copy
	// through the API and the archive must stay intact.
	id, err := certid.ForCertificateCID(raw)
	if err != nil {
		t.Fatalf("ForCertificateCID: %v", err)
	}
	got, err := m.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got[0] = 'X'
	fresh, err := m.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(fresh, raw) {
		t.Fatalf("Get must return copies, not the stored slice")
	}
}
