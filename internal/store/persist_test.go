package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
	"github.com/MrSnakeDoc/bankfinder/internal/logger"
	"github.com/MrSnakeDoc/bankfinder/internal/store/memory"
)

func newPersistence(t *testing.T) (*Persistence, *memory.KV) {
	t.Helper()
	kv := memory.New()
	return NewPersistence(kv, nil, logger.New("error", false)), kv
}

func accessFavorite(ts int64, name string) domain.FavoriteItem {
	return domain.FavoriteItem{
		Type:      domain.FavoriteBank,
		ID:        "044",
		Bank:      &domain.Bank{ID: "044", Name: name, Code: "044"},
		Timestamp: ts,
	}
}

func TestGetFavoritesEmpty(t *testing.T) {
	p, _ := newPersistence(t)
	got := p.GetFavorites(context.Background())
	if got == nil || len(got) != 0 {
		t.Errorf("GetFavorites() on empty storage = %#v, want empty non-nil slice", got)
	}
}

func TestGetFavoritesCorruptBlob(t *testing.T) {
	p, kv := newPersistence(t)
	kv.Seed(KeyFavorites, "{not json")
	if got := p.GetFavorites(context.Background()); len(got) != 0 {
		t.Errorf("GetFavorites() on corrupt blob = %v, want empty", got)
	}
}

func TestGetFavoritesReadFailure(t *testing.T) {
	p, kv := newPersistence(t)
	kv.FailGet = errors.New("disk on fire")
	if got := p.GetFavorites(context.Background()); len(got) != 0 {
		t.Errorf("GetFavorites() on read failure = %v, want empty", got)
	}
}

func TestAddFavoriteThenLoad(t *testing.T) {
	ctx := context.Background()
	p, _ := newPersistence(t)

	item := accessFavorite(1700000000000, "Access Bank")
	if !p.AddFavorite(ctx, item) {
		t.Fatal("AddFavorite() on empty collection should write")
	}

	got := p.GetFavorites(ctx)
	if diff := cmp.Diff([]domain.FavoriteItem{item}, got); diff != "" {
		t.Errorf("GetFavorites() mismatch (-want +got):\n%s", diff)
	}
}

func TestAddFavoriteIdempotent(t *testing.T) {
	ctx := context.Background()
	p, kv := newPersistence(t)

	first := accessFavorite(1, "Access Bank")
	second := accessFavorite(2, "Access Bank Plc")

	p.AddFavorite(ctx, first)
	writes := kv.Writes(KeyFavorites)

	if p.AddFavorite(ctx, second) {
		t.Error("second AddFavorite() with the same (type, id) reported a write")
	}
	if got := kv.Writes(KeyFavorites); got != writes {
		t.Errorf("second AddFavorite() wrote to storage: writes %d -> %d", writes, got)
	}

	got := p.GetFavorites(ctx)
	if len(got) != 1 {
		t.Fatalf("GetFavorites() = %d entries, want 1", len(got))
	}
	if got[0].Bank.Name != "Access Bank" || got[0].Timestamp != 1 {
		t.Errorf("stored entry = %+v, want the first snapshot", got[0])
	}
}

func TestAddFavoriteSameIDDifferentType(t *testing.T) {
	ctx := context.Background()
	p, _ := newPersistence(t)

	p.AddFavorite(ctx, accessFavorite(1, "Access Bank"))
	p.AddFavorite(ctx, domain.FavoriteItem{
		Type: domain.FavoriteBranch, ID: "044", Branch: &domain.Branch{ID: "044"}, Timestamp: 2,
	})

	if got := p.GetFavorites(ctx); len(got) != 2 {
		t.Errorf("GetFavorites() = %d entries, want 2 (type is part of identity)", len(got))
	}
}

func TestRemoveFavoriteRoundTrip(t *testing.T) {
	ctx := context.Background()
	p, _ := newPersistence(t)

	existing := []domain.FavoriteItem{
		{Type: domain.FavoriteBranch, ID: "b1", Branch: &domain.Branch{ID: "b1", BranchName: "Lagos Main"}, Timestamp: 10},
	}
	p.SaveFavorites(ctx, existing)
	before := p.GetFavorites(ctx)

	p.AddFavorite(ctx, accessFavorite(20, "Access Bank"))
	if !p.RemoveFavorite(ctx, domain.FavoriteBank, "044") {
		t.Fatal("RemoveFavorite() of a present entry should write")
	}

	if diff := cmp.Diff(before, p.GetFavorites(ctx)); diff != "" {
		t.Errorf("add then remove changed the collection (-before +after):\n%s", diff)
	}
}

func TestRemoveFavoriteAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	p, kv := newPersistence(t)

	p.AddFavorite(ctx, accessFavorite(1, "Access Bank"))
	writes := kv.Writes(KeyFavorites)

	if p.RemoveFavorite(ctx, domain.FavoriteBranch, "044") {
		t.Error("RemoveFavorite() of an absent entry reported a write")
	}
	if kv.Writes(KeyFavorites) != writes {
		t.Error("RemoveFavorite() of an absent entry wrote to storage")
	}
}

func TestAddFavoriteReplacesCorruptBlob(t *testing.T) {
	ctx := context.Background()
	p, kv := newPersistence(t)
	kv.Seed(KeyFavorites, "[{]")

	if !p.AddFavorite(ctx, accessFavorite(1, "Access Bank")) {
		t.Fatal("AddFavorite() over a corrupt blob should write")
	}
	if got := p.GetFavorites(ctx); len(got) != 1 {
		t.Errorf("GetFavorites() = %v, want the new entry only", got)
	}
}

func TestAddFavoriteReadFailureDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	p, kv := newPersistence(t)

	p.AddFavorite(ctx, accessFavorite(1, "Access Bank"))
	writes := kv.Writes(KeyFavorites)

	kv.FailGet = errors.New("timeout")
	if p.AddFavorite(ctx, domain.FavoriteItem{Type: domain.FavoriteBranch, ID: "b1", Branch: &domain.Branch{ID: "b1"}}) {
		t.Error("AddFavorite() should not write when the current collection cannot be read")
	}
	if kv.Writes(KeyFavorites) != writes {
		t.Error("AddFavorite() overwrote the collection after a read failure")
	}
}

func TestWriteFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	p, kv := newPersistence(t)
	kv.FailSet = errors.New("read-only")

	if p.AddFavorite(ctx, accessFavorite(1, "Access Bank")) {
		t.Error("AddFavorite() reported a write that failed")
	}
	p.SaveTheme(ctx, domain.ThemeDark)
	if got := p.GetTheme(ctx); got != domain.ThemeLight {
		t.Errorf("GetTheme() = %q after failed save, want light", got)
	}
}

func TestConcurrentAddsKeepEveryEntry(t *testing.T) {
	ctx := context.Background()
	p, _ := newPersistence(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			p.AddFavorite(ctx, domain.FavoriteItem{
				Type: domain.FavoriteBranch, ID: id, Branch: &domain.Branch{ID: id}, Timestamp: int64(i),
			})
		}(i)
	}
	wg.Wait()

	if got := p.GetFavorites(ctx); len(got) != 20 {
		t.Errorf("GetFavorites() = %d entries after concurrent adds, want 20", len(got))
	}
}

func TestTheme(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		seed   bool
		want   domain.ThemeMode
	}{
		{name: "unset", want: domain.ThemeLight},
		{name: "dark", stored: "dark", seed: true, want: domain.ThemeDark},
		{name: "light", stored: "light", seed: true, want: domain.ThemeLight},
		{name: "garbage", stored: "purple", seed: true, want: domain.ThemeLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, kv := newPersistence(t)
			if tt.seed {
				kv.Seed(KeyTheme, tt.stored)
			}
			if got := p.GetTheme(context.Background()); got != tt.want {
				t.Errorf("GetTheme() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestThemeReadFailureDefaultsToLight(t *testing.T) {
	p, kv := newPersistence(t)
	kv.Seed(KeyTheme, "dark")
	kv.FailGet = errors.New("boom")
	if got := p.GetTheme(context.Background()); got != domain.ThemeLight {
		t.Errorf("GetTheme() = %q, want light", got)
	}
}

func TestLockTimeoutIsSwallowed(t *testing.T) {
	locker := NewLocalLocker()
	p := NewPersistence(memory.New(), locker, logger.New("error", false))

	release, err := locker.Lock(context.Background(), LockName(KeyTheme))
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	p.SaveTheme(ctx, domain.ThemeDark)

	if got := p.GetTheme(context.Background()); got != domain.ThemeLight {
		t.Errorf("theme was written without the lock: %q", got)
	}
}
