// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"os"
	"path/filepath"
	"strings"
)

// GetDataDir returns the bobbin data directory.
//
// Priority:
// 1. BOBBIN_DATA_DIR environment variable (if set and non-empty)
// 2. ~/.bobbin (default)
//
// The returned path is always absolute. Tilde (~) in BOBBIN_DATA_DIR is
// expanded to the user's home directory; relative paths are made absolute.
//
// This function is called during bootstrap, before the config file itself
// is loaded, so it reads os.Getenv directly rather than viper.
func GetDataDir() string {
	if dataDir := os.Getenv("BOBBIN_DATA_DIR"); dataDir != "" {
		return expandPath(dataDir)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".bobbin"
	}
	return filepath.Join(homeDir, ".bobbin")
}

// GetSubDir returns a subdirectory within the bobbin data directory,
// creating it if necessary.
func GetSubDir(name string) (string, error) {
	dir := filepath.Join(GetDataDir(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// expandPath expands a leading tilde and makes relative paths absolute.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
		}
	}
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err == nil {
			path = abs
		}
	}
	return path
}
