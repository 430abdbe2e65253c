package config

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ItsNotGoodName/x-wallpaper/internal/core"
	"gopkg.in/yaml.v3"
)

func NewYAML(filePath string) YAML {
	return YAML{
		filePath: filePath,
	}
}

type YAML struct {
	filePath string
}

// Exists implements Driver.
func (y YAML) Exists() (bool, error) {
	return core.FileExists(y.filePath)
}

func (y YAML) Read() (Config, error) {
	file, err := os.Open(y.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return Config{}, err
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg.normalize(), nil
}

func (y YAML) Write(cfg Config) error {
	return writeAtomic(y.filePath, func(file *os.File) error {
		enc := yaml.NewEncoder(file)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	})
}

func NewJSON(filePath string) JSON {
	return JSON{
		filePath: filePath,
	}
}

type JSON struct {
	filePath string
}

// Exists implements Driver.
func (j JSON) Exists() (bool, error) {
	return core.FileExists(j.filePath)
}

func (j JSON) Read() (Config, error) {
	file, err := os.Open(j.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return Config{}, err
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg.normalize(), nil
}

func (j JSON) Write(cfg Config) error {
	return writeAtomic(j.filePath, func(file *os.File) error {
		enc := json.NewEncoder(file)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	})
}

func NewTOML(filePath string) TOML {
	return TOML{
		filePath: filePath,
	}
}

type TOML struct {
	filePath string
}

// Exists implements Driver.
func (t TOML) Exists() (bool, error) {
	return core.FileExists(t.filePath)
}

func (t TOML) Read() (Config, error) {
	file, err := os.Open(t.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return Config{}, err
	}
	defer file.Close()

	var cfg Config
	if _, err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg.normalize(), nil
}

func (t TOML) Write(cfg Config) error {
	return writeAtomic(t.filePath, func(file *os.File) error {
		return toml.NewEncoder(file).Encode(cfg)
	})
}

// writeAtomic writes to a temporary file and renames it over filePath.
func writeAtomic(filePath string, fn func(file *os.File) error) error {
	filePathTmp := filePath + ".tmp"
	file, err := os.OpenFile(filePathTmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if err := fn(file); err != nil {
		file.Close()
		os.Remove(filePathTmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(filePathTmp)
		return err
	}

	return os.Rename(filePathTmp, filePath)
}
