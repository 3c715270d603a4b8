package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/bankfinder/internal/config"
	"github.com/MrSnakeDoc/bankfinder/internal/directory"
	"github.com/MrSnakeDoc/bankfinder/internal/favorites"
	"github.com/MrSnakeDoc/bankfinder/internal/logger"
	"github.com/MrSnakeDoc/bankfinder/internal/preference"
	"github.com/MrSnakeDoc/bankfinder/internal/sources/naija"
	"github.com/MrSnakeDoc/bankfinder/internal/startup"
	"github.com/MrSnakeDoc/bankfinder/internal/store"
	"github.com/MrSnakeDoc/bankfinder/internal/utils"
)

// Core is everything the server and the CLI share: storage, the three
// stores and the startup sequence wiring them together.
type Core struct {
	Config      *config.Config
	Logger      logger.Logger
	KV          store.KV
	Persistence *store.Persistence
	Directory   *directory.Store
	Favorites   *favorites.Store
	Preference  *preference.Store
	Startup     *startup.Sequence
}

// NewCore opens storage and builds the stores. Nothing is loaded until
// Startup is started.
func NewCore(ctx context.Context, cfg *config.Config, log logger.Logger, opts startup.Options) (*Core, error) {
	kv, locker, err := openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	persist := store.NewPersistence(kv, locker, log)
	dir := directory.New(naija.NewFileProvider(cfg.DataFile), log)
	favs := favorites.New(persist)
	pref := preference.New(persist)

	seq := startup.New(startup.Steps{
		LoadTheme:     func(ctx context.Context) { pref.Load(ctx) },
		LoadBanks:     dir.LoadBanks,
		LoadBranches:  dir.LoadAllBranches,
		LoadFavorites: favs.Load,
	}, opts, log)

	return &Core{
		Config:      cfg,
		Logger:      log,
		KV:          kv,
		Persistence: persist,
		Directory:   dir,
		Favorites:   favs,
		Preference:  pref,
		Startup:     seq,
	}, nil
}

// Boot runs the startup sequence and waits for every load to settle. The
// returned error is the first failed load, if any.
func (c *Core) Boot(ctx context.Context) error {
	c.Startup.Start(ctx)
	select {
	case <-c.Startup.Settled():
		return c.Startup.Err()
	case <-ctx.Done():
		return fmt.Errorf("boot: %w", ctx.Err())
	}
}

func (c *Core) Close() {
	utils.CloseLogged(c.KV, "storage", c.Logger)
}
