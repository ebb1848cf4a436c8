package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	APIURL       string `json:"api_url"`
	Locale       string `json:"locale"`
	ServeEnabled bool   `json:"serve_enabled"`
	ServePort    int    `json:"serve_port"`
	DBPath       string `json:"db_path"`
}

func Default() Config {
	return Config{APIURL: "http://127.0.0.1:8000", Locale: "en", ServePort: 8000}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "taskpad", "config.json"), nil
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return Config{}, err
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}

// ApplyEnv layers environment overrides on top of the file config. Flags
// are applied after this in main, so precedence is flag > env > file.
func ApplyEnv(cfg Config) Config {
	if value := os.Getenv("TASKPAD_API_URL"); value != "" {
		cfg.APIURL = value
	}
	if value := os.Getenv("TASKPAD_LOCALE"); value != "" {
		cfg.Locale = value
	}
	return cfg
}

func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
