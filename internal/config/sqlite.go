package config

import (
	"github.com/ItsNotGoodName/x-wallpaper/internal/core"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Setting is a single row of the settings table.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value int
}

func NewSQLite(filePath string) (SQLite, error) {
	exists, err := core.FileExists(filePath)
	if err != nil {
		return SQLite{}, err
	}

	db, err := gorm.Open(sqlite.Open(filePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return SQLite{}, errors.Wrap(err, "failed to open settings database")
	}

	if err := db.AutoMigrate(&Setting{}); err != nil {
		return SQLite{}, errors.Wrap(err, "failed to migrate settings database")
	}

	return SQLite{
		db:     db,
		exists: exists,
	}, nil
}

type SQLite struct {
	db     *gorm.DB
	exists bool
}

// Exists implements Driver.
func (s SQLite) Exists() (bool, error) {
	return s.exists, nil
}

func (s SQLite) Read() (Config, error) {
	var rows []Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return Config{}, errors.Wrap(err, "failed to read settings")
	}

	cfg := defaultConfig()
	for _, row := range rows {
		cfg.Values[Key(row.Key)] = row.Value
	}
	return cfg, nil
}

func (s SQLite) Write(cfg Config) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		keys := make([]string, 0, len(cfg.Values))
		for k, v := range cfg.Values {
			keys = append(keys, string(k))
			row := Setting{Key: string(k), Value: v}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return err
			}
		}

		if len(keys) == 0 {
			return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Setting{}).Error
		}
		return tx.Where("`key` NOT IN ?", keys).Delete(&Setting{}).Error
	})
	if err != nil {
		return errors.Wrap(err, "failed to write settings")
	}
	return nil
}

func (s SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}
	return sqlDB.Close()
}
