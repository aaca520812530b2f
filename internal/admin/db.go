package admin

import (
	"MachineCatalog/internal/config"
	"MachineCatalog/internal/repo"
	"fmt"

	"gorm.io/gorm"
)

// openDB открывает БД каталога (с миграциями) и возвращает (db, cleanup, error).
// cleanup закрывает пул соединений.
func openDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}
