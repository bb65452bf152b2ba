package main

import (
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/todos/internal/kvstore"
)

func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".todos"), nil
}

func defaultConfigPath() (string, error) {
	dir, err := defaultHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.yaml"), nil
}

func defaultLogPath() (string, error) {
	dir, err := defaultHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "todos.log"), nil
}

func defaultStorePath(driver string) (string, error) {
	dir, err := defaultHomeDir()
	if err != nil {
		return "", err
	}

	switch driver {
	case kvstore.DriverSQLite:
		return filepath.Join(dir, "preferences.db"), nil
	case kvstore.DriverMemory:
		return "", nil
	default:
		return filepath.Join(dir, "preferences.json"), nil
	}
}
