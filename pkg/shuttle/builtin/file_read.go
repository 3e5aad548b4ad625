// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package builtin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/teradata-labs/bobbin/pkg/shuttle"
)

// MaxFileReadSize is the maximum file size file_read will return (1MB).
// Prevents a single tool result from swamping the model's context.
const MaxFileReadSize = 1 * 1024 * 1024

// FileReadTool reads text files from a sandboxed base directory.
type FileReadTool struct {
	baseDir string
}

// NewFileReadTool creates a file_read tool rooted at baseDir.
// If baseDir is empty, the current working directory is used.
func NewFileReadTool(baseDir string) *FileReadTool {
	if baseDir == "" {
		baseDir, _ = os.Getwd()
	}
	return &FileReadTool{baseDir: baseDir}
}

func (t *FileReadTool) Name() string {
	return "file_read"
}

func (t *FileReadTool) Description() string {
	return "Reads a text file from the workspace so responses are grounded in actual file content."
}

func (t *FileReadTool) InputSchema() *shuttle.JSONSchema {
	return shuttle.NewObjectSchema(
		"Parameters for reading files",
		map[string]*shuttle.JSONSchema{
			"path": shuttle.NewStringSchema("File path to read, relative to the workspace root (required)"),
		},
		[]string{"path"},
	)
}

func (t *FileReadTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return nil, fmt.Errorf("invalid arguments: path is required")
	}

	resolved := filepath.Join(t.baseDir, filepath.Clean(path))
	rel, err := filepath.Rel(t.baseDir, resolved)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("permission denied: path escapes workspace: %s", path)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("invalid arguments: %s is a directory", path)
	}
	if info.Size() > MaxFileReadSize {
		return nil, fmt.Errorf("file too large: %s (%d bytes, limit %d)", path, info.Size(), MaxFileReadSize)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return map[string]interface{}{
		"path":    path,
		"content": string(data),
		"size":    info.Size(),
	}, nil
}
