package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const fileExt = ".json"

// LocalStore keeps each document as a pretty-printed JSON file under a
// data directory.
type LocalStore struct {
	dir   string
	locks *keyLocks
}

// NewLocalStore creates the data directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, storageErr("mkdir", dir, err)
	}
	return &LocalStore{dir: dir, locks: newKeyLocks()}, nil
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// Load reads the document at key; a missing file leaves out untouched.
func (s *LocalStore) Load(_ context.Context, key string, out interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return storageErr("read", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return storageErr("decode", key, err)
	}
	return nil
}

// Save overwrites the document at key.
func (s *LocalStore) Save(_ context.Context, key string, doc interface{}) error {
	lock := s.locks.forKey(key)
	lock.Lock()
	defer lock.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return storageErr("encode", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return storageErr("write", key, err)
	}
	return nil
}

// ListKeys returns the stored keys beginning with prefix.
func (s *LocalStore) ListKeys(_ context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, storageErr("list", prefix, err)
	}
	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		key := strings.TrimSuffix(name, fileExt)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
