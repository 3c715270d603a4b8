package favorites

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
)

// Persister is the slice of store.Persistence the favorites need.
type Persister interface {
	GetFavorites(ctx context.Context) []domain.FavoriteItem
	AddFavorite(ctx context.Context, item domain.FavoriteItem) bool
	RemoveFavorite(ctx context.Context, typ domain.FavoriteType, id string) bool
}

// Store mirrors the persisted favorites. The in-memory list changes only
// after the matching persistence call has returned.
type Store struct {
	persist Persister
	now     func() time.Time

	mu      sync.RWMutex
	items   []domain.FavoriteItem
	loading bool
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the time source used to stamp new favorites
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(persist Persister, opts ...Option) *Store {
	s := &Store{persist: persist, now: time.Now, items: []domain.FavoriteItem{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted collection.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	items := s.persist.GetFavorites(ctx)

	s.mu.Lock()
	s.items = items
	s.loading = false
	s.mu.Unlock()
}

// Add persists a fully-populated item unless (type, id) is already a
// favorite. Adding twice is a no-op.
func (s *Store) Add(ctx context.Context, item domain.FavoriteItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.persist.AddFavorite(ctx, item)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(item.Type, item.ID) < 0 {
		s.items = append(s.items, item)
	}
	return nil
}

// Remove drops (type, id). Removing an absent favorite is a no-op.
func (s *Store) Remove(ctx context.Context, typ domain.FavoriteType, id string) {
	s.persist.RemoveFavorite(ctx, typ, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]domain.FavoriteItem, 0, len(s.items))
	for _, it := range s.items {
		if !it.Matches(typ, id) {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// ToggleBank removes bank from the favorites when present, otherwise adds a
// snapshot of it. It returns whether bank is a favorite afterwards.
func (s *Store) ToggleBank(ctx context.Context, bank domain.Bank) bool {
	if s.IsFavorite(domain.FavoriteBank, bank.ID) {
		s.Remove(ctx, domain.FavoriteBank, bank.ID)
		return false
	}
	_ = s.Add(ctx, domain.NewBankFavorite(bank, s.now()))
	return true
}

// ToggleBranch is ToggleBank for branches.
func (s *Store) ToggleBranch(ctx context.Context, branch domain.Branch) bool {
	if s.IsFavorite(domain.FavoriteBranch, branch.ID) {
		s.Remove(ctx, domain.FavoriteBranch, branch.ID)
		return false
	}
	_ = s.Add(ctx, domain.NewBranchFavorite(branch, s.now()))
	return true
}

func (s *Store) IsFavorite(typ domain.FavoriteType, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(typ, id) >= 0
}

// Items returns the favorites in insertion order.
func (s *Store) Items() []domain.FavoriteItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FavoriteItem, len(s.items))
	copy(out, s.items)
	return out
}

// ByType returns the favorites of one type. An empty type returns all.
func (s *Store) ByType(typ domain.FavoriteType) []domain.FavoriteItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FilterFavorites(s.items, typ)
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Counts is the number of favorites per type.
type Counts struct {
	Banks    int `json:"banks"`
	Branches int `json:"branches"`
	Total    int `json:"total"`
}

func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Counts
	for _, it := range s.items {
		switch it.Type {
		case domain.FavoriteBank:
			c.Banks++
		case domain.FavoriteBranch:
			c.Branches++
		}
	}
	c.Total = len(s.items)
	return c
}

func (s *Store) indexLocked(typ domain.FavoriteType, id string) int {
	for i, it := range s.items {
		if it.Matches(typ, id) {
			return i
		}
	}
	return -1
}
