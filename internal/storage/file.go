// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"

	"github.com/jeranaias/docchat-tui/internal/util"
)

// FileStore persists each key as one file under a base directory. Writes are
// atomic, so a crash mid-save never leaves a torn value behind.
type FileStore struct {
	// BaseDir is the directory holding one file per key.
	BaseDir string
}

// NewFileStore creates a file store rooted at ~/.docchat/state.
func NewFileStore() (*FileStore, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewFileStoreWithDir(filepath.Join(dir, "state"))
}

// NewFileStoreWithDir creates a file store rooted at a custom directory.
func NewFileStoreWithDir(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, err
	}
	return &FileStore{BaseDir: baseDir}, nil
}

// Get returns the stored value for key.
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set writes the value durably. Credential material gets 0600.
func (s *FileStore) Set(key string, value []byte) error {
	return util.AtomicWriteFile(s.filePath(key), value, 0600)
}

// Delete removes the key's file.
func (s *FileStore) Delete(key string) error {
	if err := os.Remove(s.filePath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// filePath returns the backing file for a key.
func (s *FileStore) filePath(key string) string {
	return filepath.Join(s.BaseDir, sanitizeKey(key)+".json")
}
