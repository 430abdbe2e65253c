package config

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

type Driver interface {
	Exists() (bool, error)
	Write(config Config) error
	Read() (Config, error)
}

// NewDriver picks a driver from the extension of filePath.
func NewDriver(filePath string) (Driver, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return NewYAML(filePath), nil
	case ".json":
		return NewJSON(filePath), nil
	case ".toml":
		return NewTOML(filePath), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLite(filePath)
	default:
		return nil, fmt.Errorf("%s: unsupported settings file extension", filePath)
	}
}

func NewStore(driver Driver) (Store, error) {
	exists, err := driver.Exists()
	if err != nil {
		return Store{}, err
	}
	if !exists {
		if err := driver.Write(defaultConfig()); err != nil {
			return Store{}, err
		}
	}

	return Store{
		driver: driver,
	}, nil
}

type Store struct {
	driver Driver
}

func (s Store) GetConfig() (Config, error) {
	cfg, err := s.driver.Read()
	if err != nil {
		return Config{}, err
	}
	return cfg.normalize(), nil
}

func (s Store) UpdateConfig(fn func(cfg Config) (Config, error)) error {
	cfg, err := s.GetConfig()
	if err != nil {
		return err
	}

	cfg, err = fn(cfg)
	if err != nil {
		return err
	}

	return s.driver.Write(cfg.normalize())
}

// GetInt returns the value stored under key, or 0 when it is absent or unreadable.
func (s Store) GetInt(key Key) int {
	cfg, err := s.GetConfig()
	if err != nil {
		slog.Warn("Failed to read setting", "key", key, "error", err)
		return 0
	}
	return cfg.Values[key]
}

func (s Store) SetInt(key Key, value int) error {
	return s.SetInts(map[Key]int{key: value})
}

// SetInts writes every value in a single driver write.
func (s Store) SetInts(values map[Key]int) error {
	return s.UpdateConfig(func(cfg Config) (Config, error) {
		for k, v := range values {
			cfg.Values[k] = v
		}
		return cfg, nil
	})
}

func (s Store) Delete(keys ...Key) error {
	return s.UpdateConfig(func(cfg Config) (Config, error) {
		for _, k := range keys {
			delete(cfg.Values, k)
		}
		return cfg, nil
	})
}

// Close releases the driver when it holds resources.
func (s Store) Close() error {
	if closer, ok := s.driver.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
