// Package environment provides utilities for managing environment variables
// and configuration loading with support for namespacing and defaults.
package environment

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the working
// directory. A missing file is not an error; variables already present in the
// process environment are never overridden.
//
// Example:
//
//	if err := environment.LoadEnv(); err != nil {
//	    log.Printf("warning: reading .env: %v", err)
//	}
func LoadEnv() error {
	return loadPath("")
}

// loadPath loads environment variables from the file at p, or from .env when
// p is empty. A missing file is ignored.
func loadPath(p string) error {
	var err error
	if p != "" {
		err = godotenv.Load(p)
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// GetNamespaceEnvKey constructs a namespaced environment variable key by
// combining a namespace prefix with the actual key name using an underscore.
// If no namespace is provided, it returns the key unchanged.
//
// Example:
//
//	key := GetNamespaceEnvKey("TASKS", "PORT")
//	// Returns: "TASKS_PORT"
func GetNamespaceEnvKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", namespace, key)
}
