package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
	"github.com/MrSnakeDoc/bankfinder/internal/logger"
)

var errCorrupt = errors.New("corrupt favorites blob")

// Persistence reads and writes the favorites collection and the theme as
// whole values. Storage failures never reach the caller: they are logged and
// replaced by an empty list or the default theme.
type Persistence struct {
	kv     KV
	locker Locker
	log    logger.Logger
}

// NewPersistence wires a backend and a locker. A nil locker means a
// LocalLocker.
func NewPersistence(kv KV, locker Locker, log logger.Logger) *Persistence {
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &Persistence{kv: kv, locker: locker, log: log.With(logger.Component("persistence"))}
}

// Ping reports whether the backend is reachable.
func (p *Persistence) Ping(ctx context.Context) error {
	return p.kv.Ping(ctx)
}

// GetFavorites returns the stored collection, or an empty one when the key is
// unset, unreadable or corrupt.
func (p *Persistence) GetFavorites(ctx context.Context) []domain.FavoriteItem {
	items, err := p.readFavorites(ctx)
	if err != nil {
		p.log.Error("error loading favorites", logger.Error(err))
		return []domain.FavoriteItem{}
	}
	return items
}

// SaveFavorites overwrites the stored collection.
func (p *Persistence) SaveFavorites(ctx context.Context, items []domain.FavoriteItem) {
	err := p.withLock(ctx, KeyFavorites, func() error {
		return p.writeFavorites(ctx, items)
	})
	if err != nil {
		p.log.Error("error saving favorites", logger.Error(err))
	}
}

// AddFavorite appends item unless an entry with the same type and id exists.
// It reports whether a write happened.
func (p *Persistence) AddFavorite(ctx context.Context, item domain.FavoriteItem) bool {
	written := false
	err := p.withLock(ctx, KeyFavorites, func() error {
		items, err := p.currentFavorites(ctx)
		if err != nil {
			return err
		}
		for _, fav := range items {
			if fav.Matches(item.Type, item.ID) {
				return nil
			}
		}
		if err := p.writeFavorites(ctx, append(items, item)); err != nil {
			return err
		}
		written = true
		return nil
	})
	if err != nil {
		p.log.Error("error adding favorite",
			logger.String("type", string(item.Type)),
			logger.String("id", item.ID),
			logger.Error(err))
	}
	return written
}

// RemoveFavorite drops every entry matching (typ, id). It reports whether a
// write happened; nothing is written when no entry matched.
func (p *Persistence) RemoveFavorite(ctx context.Context, typ domain.FavoriteType, id string) bool {
	written := false
	err := p.withLock(ctx, KeyFavorites, func() error {
		items, err := p.currentFavorites(ctx)
		if err != nil {
			return err
		}
		kept := make([]domain.FavoriteItem, 0, len(items))
		for _, fav := range items {
			if !fav.Matches(typ, id) {
				kept = append(kept, fav)
			}
		}
		if len(kept) == len(items) {
			return nil
		}
		if err := p.writeFavorites(ctx, kept); err != nil {
			return err
		}
		written = true
		return nil
	})
	if err != nil {
		p.log.Error("error removing favorite",
			logger.String("type", string(typ)),
			logger.String("id", id),
			logger.Error(err))
	}
	return written
}

// GetTheme returns the stored mode, light when unset or unreadable.
func (p *Persistence) GetTheme(ctx context.Context) domain.ThemeMode {
	v, found, err := p.kv.Get(ctx, KeyTheme)
	if err != nil {
		p.log.Error("error loading theme", logger.Error(err))
		return domain.DefaultTheme
	}
	if !found {
		return domain.DefaultTheme
	}
	return domain.ParseThemeMode(v)
}

// SaveTheme stores mode.
func (p *Persistence) SaveTheme(ctx context.Context, mode domain.ThemeMode) {
	err := p.withLock(ctx, KeyTheme, func() error {
		return p.kv.Set(ctx, KeyTheme, string(mode))
	})
	if err != nil {
		p.log.Error("error saving theme", logger.String("mode", string(mode)), logger.Error(err))
	}
}

func (p *Persistence) readFavorites(ctx context.Context) ([]domain.FavoriteItem, error) {
	raw, found, err := p.kv.Get(ctx, KeyFavorites)
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}
	if !found || raw == "" {
		return []domain.FavoriteItem{}, nil
	}

	var items []domain.FavoriteItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorrupt, err)
	}
	if items == nil {
		items = []domain.FavoriteItem{}
	}
	return items, nil
}

// currentFavorites is the read half of a read-modify-write. A corrupt blob
// counts as empty and gets replaced; a failing backend aborts the write.
func (p *Persistence) currentFavorites(ctx context.Context) ([]domain.FavoriteItem, error) {
	items, err := p.readFavorites(ctx)
	if errors.Is(err, errCorrupt) {
		p.log.Warn("replacing corrupt favorites", logger.Error(err))
		return []domain.FavoriteItem{}, nil
	}
	return items, err
}

func (p *Persistence) writeFavorites(ctx context.Context, items []domain.FavoriteItem) error {
	if items == nil {
		items = []domain.FavoriteItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := p.kv.Set(ctx, KeyFavorites, string(data)); err != nil {
		return fmt.Errorf("failed to write favorites: %w", err)
	}
	return nil
}

func (p *Persistence) withLock(ctx context.Context, key string, fn func() error) error {
	release, err := p.locker.Lock(ctx, LockName(key))
	if err != nil {
		return fmt.Errorf("lock %s: %w", key, err)
	}
	defer release()
	return fn()
}
