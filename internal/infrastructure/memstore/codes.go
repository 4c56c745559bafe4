package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/plugin-accounts/internal/domain"
)

// CodeStore keeps pending verification entries in process memory, keyed by
// email. Contents are deliberately lost on restart: codes live for minutes, so
// re-requesting one is cheaper than any durability machinery. Swapping in a
// networked cache for multi-instance deployments only requires another type
// with the same Put/Get/Delete surface.
type CodeStore struct {
	mu      sync.Mutex
	entries map[string]domain.VerificationEntry
}

func NewCodeStore() *CodeStore {
	return &CodeStore{entries: make(map[string]domain.VerificationEntry)}
}

// Put upserts the entry for its email. Any previous entry for the same address
// is overwritten, which invalidates the old code.
func (s *CodeStore) Put(_ context.Context, v domain.VerificationEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[v.Email] = v
	return nil
}

func (s *CodeStore) Get(_ context.Context, email string) (*domain.VerificationEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[email]
	if !ok {
		return nil, fmt.Errorf("verification entry: %w", domain.ErrNotFound)
	}
	return &v, nil
}

func (s *CodeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}
