package main

import (
	"math/rand"
	"time"

	"github.com/SASASDAa/tgsg-sub000/internal/catalog"
	"github.com/SASASDAa/tgsg-sub000/internal/config"
	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
	"github.com/SASASDAa/tgsg-sub000/internal/storage"
)

func loadSettingsOrExit() config.Settings {
	s, err := config.LoadSettings()
	if err != nil {
		logging.Fatal("Invalid environment", err, nil)
	}
	return s
}

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid telecards configuration", err, logging.Fields{constants.LogFieldConfigPath: path})
	}
	return cfg
}

func buildCatalogOrExit(cfg *config.LoadedConfig) *catalog.Catalog {
	cat, err := catalog.New(cfg.Cards)
	if err != nil {
		logging.Fatal("Invalid card catalog", err, nil)
	}
	return cat
}

func createRepositoryOrExit(dbPath string, cat *catalog.Catalog) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldDBPath: dbPath})
	}
	return storage.NewSQLiteRepository(db, cat.Has)
}

// newRand seeds from TELECARDS_SEED when set so whole runs can be replayed.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
