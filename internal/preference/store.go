package preference

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
)

// Persister is the slice of store.Persistence the preference needs.
type Persister interface {
	GetTheme(ctx context.Context) domain.ThemeMode
	SaveTheme(ctx context.Context, mode domain.ThemeMode)
}

// Store holds the display mode. It starts as light until Load runs.
type Store struct {
	persist Persister

	// toggles serializes Toggle so two concurrent calls flip twice.
	toggles sync.Mutex

	mu   sync.RWMutex
	mode domain.ThemeMode
}

func New(persist Persister) *Store {
	return &Store{persist: persist, mode: domain.DefaultTheme}
}

// Load reads the persisted mode. Unset or unreadable yields light.
func (s *Store) Load(ctx context.Context) domain.ThemeMode {
	mode := s.persist.GetTheme(ctx)

	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	return mode
}

// Toggle flips the mode and persists it. The in-memory mode changes once the
// save has returned, whether or not the save succeeded.
func (s *Store) Toggle(ctx context.Context) domain.ThemeMode {
	s.toggles.Lock()
	defer s.toggles.Unlock()

	next := s.Mode().Toggle()
	s.persist.SaveTheme(ctx, next)

	s.mu.Lock()
	s.mode = next
	s.mu.Unlock()
	return next
}

func (s *Store) Mode() domain.ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}
