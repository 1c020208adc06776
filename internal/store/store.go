// Package store provides the key→document blob storage the rest of the
// system is written against. Documents are whole JSON values: a load
// reads the entire document, a save overwrites it. A missing key is an
// empty default, never an error.
package store

import (
	"context"
	"fmt"
	"sync"
)

// DocumentStore is the storage capability injected into repositories.
type DocumentStore interface {
	// Load unmarshals the document at key into out. When the key does
	// not exist, out is left at its zero value and no error is returned.
	Load(ctx context.Context, key string, out interface{}) error

	// Save marshals doc and overwrites the document at key.
	Save(ctx context.Context, key string, doc interface{}) error

	// ListKeys returns every stored key beginning with prefix.
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

// Document keys used by the core.
const (
	KeyUsers         = "users"
	KeyProjects      = "projects"
	KeyWorkTypes     = "work_types"
	KeyJobCategories = "job_categories"

	WorkItemsKeyPrefix = "work_items_"
	ReportsKeyPrefix   = "reports_"
)

// WorkItemsKey returns the document key holding one process's items.
func WorkItemsKey(workTypeID string) string {
	return WorkItemsKeyPrefix + workTypeID
}

// WorkTypeIDFromKey recovers the work type id from a work-items key.
func WorkTypeIDFromKey(key string) string {
	if len(key) <= len(WorkItemsKeyPrefix) {
		return ""
	}
	return key[len(WorkItemsKeyPrefix):]
}

// ReportsKey returns the document key holding one user's reports.
func ReportsKey(username string) string {
	return ReportsKeyPrefix + username
}

// keyLocks serializes writers per document key. The storage contract is
// whole-document overwrite with last-writer-wins; the lock only keeps
// two in-process writers from interleaving partial writes.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*sync.Mutex)}
}

func (k *keyLocks) forKey(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	return lock
}

func storageErr(op, key string, err error) error {
	return fmt.Errorf("store: %s %q: %w", op, key, err)
}
