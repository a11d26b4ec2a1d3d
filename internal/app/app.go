package app

import (
	"fmt"

	"pet-manager/internal/adapters/storage/file"
	"pet-manager/internal/adapters/storage/memory"
	"pet-manager/internal/adapters/storage/sqlite"
	"pet-manager/internal/domain/pets"
	"pet-manager/internal/persistence"
	"pet-manager/internal/platform/config"
	"pet-manager/internal/platform/logger"
	"pet-manager/internal/ports/storage"
)

// App agrupa lo que necesita un caller: el adapter de persistencia y el
// servicio que es dueño de la colección.
type App struct {
	Config  config.Config
	Log     logger.Logger
	Store   *persistence.Adapter
	Pets    *pets.Service
	closeFn func() error
}

func New(cfg config.Config, log logger.Logger, opts ...pets.Option) (*App, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	kv, closeFn, err := OpenKV(cfg.Storage)
	if err != nil {
		return nil, err
	}

	store := persistence.New(kv, persistence.Options{
		Key:      cfg.Storage.Key,
		Log:      log,
		MaxBytes: cfg.Storage.MaxBytes,
	})

	opts = append([]pets.Option{pets.WithLogger(log)}, opts...)
	svc := pets.NewService(store, opts...)

	log.Debug("app ready", map[string]any{
		"backend": cfg.Storage.Backend,
		"path":    cfg.Storage.Path,
		"key":     store.Key(),
	})

	return &App{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Pets:    svc,
		closeFn: closeFn,
	}, nil
}

// OpenKV abre el backend configurado. El closer nunca es nil.
func OpenKV(cfg config.StorageConfig) (storage.KV, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewKV(), noop, nil

	case config.BackendFile:
		kv, err := file.New(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return kv, noop, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return sqlite.NewKV(db), db.Close, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.Backend)
	}
}

func (a *App) Close() error {
	if a == nil || a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}
