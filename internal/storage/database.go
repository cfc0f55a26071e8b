package storage

import (
	"github.com/SASASDAa/tgsg-sub000/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database and keeps the schema current
// via AutoMigrate.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&game.Profile{}, &game.OwnedCard{}, &game.Deck{}, &game.MatchRecord{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
