package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// FavoriteType tells which entity a FavoriteItem snapshots.
type FavoriteType string

const (
	FavoriteBank   FavoriteType = "bank"
	FavoriteBranch FavoriteType = "branch"
)

// ParseFavoriteType validates a type coming from a client.
func ParseFavoriteType(s string) (FavoriteType, error) {
	switch FavoriteType(s) {
	case FavoriteBank, FavoriteBranch:
		return FavoriteType(s), nil
	default:
		return "", fmt.Errorf("unknown favorite type %q", s)
	}
}

// FavoriteItem is a persisted point-in-time copy of a Bank or a Branch.
// Exactly one of Bank and Branch is set, matching Type. The pair (Type, ID)
// is unique within a favorites collection.
type FavoriteItem struct {
	Type FavoriteType
	ID   string

	Bank   *Bank
	Branch *Branch

	// Timestamp is the creation time in unix milliseconds.
	Timestamp int64
}

// NewBankFavorite snapshots bank at time now.
func NewBankFavorite(bank Bank, now time.Time) FavoriteItem {
	b := bank
	return FavoriteItem{Type: FavoriteBank, ID: bank.ID, Bank: &b, Timestamp: now.UnixMilli()}
}

// NewBranchFavorite snapshots branch at time now.
func NewBranchFavorite(branch Branch, now time.Time) FavoriteItem {
	b := branch
	return FavoriteItem{Type: FavoriteBranch, ID: branch.ID, Branch: &b, Timestamp: now.UnixMilli()}
}

// Matches reports whether the item references (typ, id).
func (f FavoriteItem) Matches(typ FavoriteType, id string) bool {
	return f.Type == typ && f.ID == id
}

// Validate checks that the snapshot agrees with Type.
func (f FavoriteItem) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("favorite id is required")
	}
	switch f.Type {
	case FavoriteBank:
		if f.Bank == nil {
			return fmt.Errorf("bank favorite %s has no bank data", f.ID)
		}
		if f.Bank.ID != f.ID {
			return fmt.Errorf("bank favorite %s holds bank %q", f.ID, f.Bank.ID)
		}
	case FavoriteBranch:
		if f.Branch == nil {
			return fmt.Errorf("branch favorite %s has no branch data", f.ID)
		}
		if f.Branch.ID != f.ID {
			return fmt.Errorf("branch favorite %s holds branch %q", f.ID, f.Branch.ID)
		}
	default:
		return fmt.Errorf("unknown favorite type %q", f.Type)
	}
	return nil
}

// favoriteWire is the persisted shape: {type, id, data, timestamp}.
type favoriteWire struct {
	Type      FavoriteType    `json:"type"`
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

func (f FavoriteItem) MarshalJSON() ([]byte, error) {
	var data any
	switch f.Type {
	case FavoriteBank:
		data = f.Bank
	case FavoriteBranch:
		data = f.Branch
	default:
		return nil, fmt.Errorf("unknown favorite type %q", f.Type)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(favoriteWire{Type: f.Type, ID: f.ID, Data: raw, Timestamp: f.Timestamp})
}

func (f *FavoriteItem) UnmarshalJSON(b []byte) error {
	var w favoriteWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	// Missing or null data leaves the snapshot nil so Validate rejects it.
	hasData := len(w.Data) > 0 && string(w.Data) != "null"

	item := FavoriteItem{Type: w.Type, ID: w.ID, Timestamp: w.Timestamp}
	switch w.Type {
	case FavoriteBank:
		if hasData {
			item.Bank = &Bank{}
			if err := json.Unmarshal(w.Data, item.Bank); err != nil {
				return fmt.Errorf("bank favorite %s: %w", w.ID, err)
			}
		}
	case FavoriteBranch:
		if hasData {
			item.Branch = &Branch{}
			if err := json.Unmarshal(w.Data, item.Branch); err != nil {
				return fmt.Errorf("branch favorite %s: %w", w.ID, err)
			}
		}
	default:
		return fmt.Errorf("unknown favorite type %q", w.Type)
	}

	*f = item
	return nil
}
