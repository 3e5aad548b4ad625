// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package storage provides the in-process memory store that backs the
// chat client's memory tools. Entries survive for the lifetime of the
// store (optionally on disk), not of a single model turn; the engine
// itself keeps no state here.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Entry is a stored memory item.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MemoryStore is a SQLite-backed store for conversation memories.
// Thread-safe: all methods can be called concurrently.
type MemoryStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// MemoryStoreConfig configures the store.
type MemoryStoreConfig struct {
	// Path is the database file path (default: ":memory:").
	Path string
}

// NewMemoryStore opens (or creates) a memory store.
func NewMemoryStore(config MemoryStoreConfig) (*MemoryStore, error) {
	if config.Path == "" {
		config.Path = ":memory:"
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// In-memory databases lose their schema when the pool opens a second
	// connection; pin to one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &MemoryStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *MemoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS memories (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_memories_title ON memories(title);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Store saves a memory entry and returns its generated id.
func (s *MemoryStore) Store(ctx context.Context, title, content string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("memory title is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO memories (id, title, content, created_at) VALUES (?, ?, ?, ?)`,
		id, title, content, time.Now().UnixMilli())
	if err != nil {
		return "", fmt.Errorf("failed to store memory: %w", err)
	}
	return id, nil
}

// Search returns up to limit entries whose title or content contains the
// query (case-insensitive), newest first. An empty query returns the most
// recent entries.
func (s *MemoryStore) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, created_at FROM memories
		 WHERE lower(title) LIKE ? OR lower(content) LIKE ?
		 ORDER BY created_at DESC LIMIT ?`,
		pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search memories: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdMs int64
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &createdMs); err != nil {
			return nil, fmt.Errorf("failed to scan memory row: %w", err)
		}
		e.CreatedAt = time.UnixMilli(createdMs)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get retrieves a single entry by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e Entry
	var createdMs int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, created_at FROM memories WHERE id = ?`, id).
		Scan(&e.ID, &e.Title, &e.Content, &createdMs)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("memory not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get memory: %w", err)
	}
	e.CreatedAt = time.UnixMilli(createdMs)
	return &e, nil
}

// Delete removes an entry by id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete memory: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("memory not found: %s", id)
	}
	return nil
}

// Count returns the number of stored entries.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count memories: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *MemoryStore) Close() error {
	return s.db.Close()
}
