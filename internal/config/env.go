package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that back CLI flag defaults.
const (
	EnvDB       = "RPG2048_DB"
	EnvConfig   = "RPG2048_CONFIG"
	EnvLogLevel = "RPG2048_LOG_LEVEL"
	EnvSSHAddr  = "RPG2048_SSH_ADDR"
)

// LoadEnv loads the first .env file found in the working directory or its
// parent. Variables already set in the environment are not overridden.
// A missing file is not an error.
func LoadEnv() error {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: stat %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: load %s: %w", path, err)
		}
		return nil
	}
	return nil
}

// Env returns the value of key, or fallback when it is unset or empty.
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
