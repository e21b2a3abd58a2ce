package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFile reads a .env file and returns its key-value pairs without
// touching the process environment.
func LoadEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return env, nil
}

// Overlay returns a LookupFunc that prefers base and falls back to file values,
// so a .env file never overrides the real environment.
func Overlay(base LookupFunc, file map[string]string) LookupFunc {
	if base == nil {
		base = os.LookupEnv
	}
	return func(key string) (string, bool) {
		if v, ok := base(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
}
