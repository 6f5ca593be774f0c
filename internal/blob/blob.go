// Package blob abstracts "store these bytes, give me a dereferenceable
// URL". The in-memory implementation backs the simulated upload; a real
// deployment would swap in object storage behind the same interface.
package blob

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Store produces a URL that can be dereferenced to the stored bytes.
type Store interface {
	Put(ctx context.Context, fileName, contentType string, data []byte) (string, error)
}

type entry struct {
	fileName    string
	contentType string
	data        []byte
}

// MemoryStore keeps blobs in process memory and serves them under
// basePath (e.g. "/blobs"). Contents live as long as the process, which
// matches the session-scoped lifetime of the original object URLs.
type MemoryStore struct {
	basePath string
	mu       sync.RWMutex
	blobs    map[string]entry
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(basePath string) *MemoryStore {
	return &MemoryStore{basePath: basePath, blobs: make(map[string]entry)}
}

// Put stores a copy of data under a fresh key and returns its URL path.
func (s *MemoryStore) Put(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty blob %q", fileName)
	}
	key := uuid.NewString()

	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.blobs[key] = entry{fileName: fileName, contentType: contentType, data: buf}
	s.mu.Unlock()

	return s.basePath + "/" + key, nil
}

// ServeBlob dereferences a stored URL. Mounted as GET {basePath}/{key}.
func (s *MemoryStore) ServeBlob(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	s.mu.RLock()
	e, ok := s.blobs[key]
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "blob not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", e.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", e.fileName))
	w.WriteHeader(http.StatusOK)
	w.Write(e.data)
}

// Len reports the number of stored blobs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
