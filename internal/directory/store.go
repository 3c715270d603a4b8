package directory

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
	"github.com/MrSnakeDoc/bankfinder/internal/logger"
	"github.com/MrSnakeDoc/bankfinder/internal/sources/naija"
)

const (
	ErrLoadBanks    = "Failed to load banks"
	ErrLoadBranches = "Failed to load branches"
)

// Store holds the banks and branches of the current session. Both lists are
// replaced wholesale by a successful load and left untouched by a failed one.
type Store struct {
	provider naija.Provider
	log      logger.Logger

	mu        sync.RWMutex
	banks     []domain.Bank
	branches  []domain.Branch
	bankByID  map[string]int // ID -> index in banks
	branchIdx map[string]int // ID -> index in branches
	inFlight  int
	errMsg    string

	lastBanks    time.Time
	lastBranches time.Time
}

// Counts is a snapshot of the list sizes.
type Counts struct {
	Banks    int `json:"banks"`
	Branches int `json:"branches"`
}

// Status is what clients poll while loads are running.
type Status struct {
	Loading        bool      `json:"loading"`
	Error          string    `json:"error,omitempty"`
	Counts         Counts    `json:"counts"`
	BanksLoaded    time.Time `json:"banksLoadedAt"`
	BranchesLoaded time.Time `json:"branchesLoadedAt"`
}

// New creates an empty directory backed by provider
func New(provider naija.Provider, log logger.Logger) *Store {
	return &Store{
		provider:  provider,
		log:       log.With(logger.Component("directory")),
		bankByID:  make(map[string]int),
		branchIdx: make(map[string]int),
	}
}

// LoadBanks replaces the bank list from the provider. On failure the previous
// list is kept and Error reports ErrLoadBanks.
func (s *Store) LoadBanks(ctx context.Context) error {
	s.begin()
	return s.loadBanks(ctx)
}

func (s *Store) loadBanks(ctx context.Context) error {
	banks, err := s.fetchBanks(ctx)
	if err != nil {
		s.fail(ErrLoadBanks, err)
		return err
	}

	byID := make(map[string]int, len(banks))
	for i, b := range banks {
		if _, dup := byID[b.ID]; !dup {
			byID[b.ID] = i
		}
	}

	s.mu.Lock()
	s.banks = banks
	s.bankByID = byID
	s.lastBanks = time.Now()
	s.inFlight--
	s.mu.Unlock()

	s.log.Info("banks loaded", logger.Int("count", len(banks)))
	return nil
}

// LoadAllBranches replaces the branch list from the provider. On failure the
// previous list is kept and Error reports ErrLoadBranches.
func (s *Store) LoadAllBranches(ctx context.Context) error {
	s.begin()
	return s.loadBranches(ctx)
}

func (s *Store) loadBranches(ctx context.Context) error {
	raw, err := s.provider.All(ctx)
	if err != nil {
		s.fail(ErrLoadBranches, err)
		return err
	}
	branches := naija.MapBranches(raw)

	idx := make(map[string]int, len(branches))
	for i, b := range branches {
		if _, dup := idx[b.ID]; !dup {
			idx[b.ID] = i
		}
	}

	s.mu.Lock()
	s.branches = branches
	s.branchIdx = idx
	s.lastBranches = time.Now()
	s.inFlight--
	s.mu.Unlock()

	s.log.Info("branches loaded", logger.Int("count", len(branches)))
	return nil
}

func (s *Store) fetchBanks(ctx context.Context) ([]domain.Bank, error) {
	raw, err := s.provider.All(ctx)
	if err != nil {
		return nil, err
	}
	return naija.MapBanks(raw)
}

// begin marks a load as started. A load started while no other load is
// running clears the error.
func (s *Store) begin() {
	s.mu.Lock()
	if s.inFlight == 0 {
		s.errMsg = ""
	}
	s.inFlight++
	s.mu.Unlock()
}

// fail records msg unless a load of the same batch already failed.
func (s *Store) fail(msg string, cause error) {
	s.log.Error(msg, logger.Error(cause))

	s.mu.Lock()
	if s.errMsg == "" {
		s.errMsg = msg
	}
	s.inFlight--
	s.mu.Unlock()
}

// Banks returns a copy of the bank list
func (s *Store) Banks() []domain.Bank {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Bank, len(s.banks))
	copy(out, s.banks)
	return out
}

// Branches returns a copy of the branch list
func (s *Store) Branches() []domain.Branch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Branch, len(s.branches))
	copy(out, s.branches)
	return out
}

// Bank retrieves a bank by ID
func (s *Store) Bank(id string) (domain.Bank, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.bankByID[id]
	if !ok {
		return domain.Bank{}, false
	}
	return s.banks[i], true
}

// Branch retrieves a branch by ID
func (s *Store) Branch(id string) (domain.Branch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.branchIdx[id]
	if !ok {
		return domain.Branch{}, false
	}
	return s.branches[i], true
}

// BranchesForBank returns the branches whose BankCode is code
func (s *Store) BranchesForBank(code string) []domain.Branch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Branch, 0)
	for _, b := range s.branches {
		if b.BankCode == code {
			out = append(out, b)
		}
	}
	return out
}

// Loading reports whether at least one load is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// Error returns the last load error, empty when none
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// LastLoad returns the completion time of the most recent successful load
func (s *Store) LastLoad() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastBranches.After(s.lastBanks) {
		return s.lastBranches
	}
	return s.lastBanks
}

func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{Banks: len(s.banks), Branches: len(s.branches)}
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Loading:        s.inFlight > 0,
		Error:          s.errMsg,
		Counts:         Counts{Banks: len(s.banks), Branches: len(s.branches)},
		BanksLoaded:    s.lastBanks,
		BranchesLoaded: s.lastBranches,
	}
}

// Reload runs both loads as one batch: the error is cleared once up front and
// a failure of either load survives the other. It returns the first error
// after both finish.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.errMsg = ""
	s.inFlight += 2
	s.mu.Unlock()

	errBanks := s.loadBanks(ctx)
	errBranches := s.loadBranches(ctx)
	if errBanks != nil {
		return errBanks
	}
	return errBranches
}
