package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override the config file.
// Nesting uses a double underscore: TODO_DATABASE__PATH sets database.path.
const EnvPrefix = "TODO_"

// applyEnv loads an optional .env file from the working directory and then
// overlays every TODO_* variable onto config.
func applyEnv(config *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", config); err != nil {
		return fmt.Errorf("apply environment overrides: %w", err)
	}
	return nil
}
