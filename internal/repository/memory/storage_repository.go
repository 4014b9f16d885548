package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"applydi-client/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// StorageRepository keeps client preferences and the credential in an
// in-memory cache and writes every change through to a JSON file, so a
// value set by one command is visible to the next.
type StorageRepository struct {
	cache *cache.Cache
	path  string
	mu    sync.Mutex
}

// NewStorageRepository loads path when it exists. An empty path gives a
// purely in-memory store.
func NewStorageRepository(path string) (*StorageRepository, error) {
	r := &StorageRepository{
		cache: cache.New(cache.NoExpiration, 0),
		path:  path,
	}
	if path == "" {
		return r, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("read storage %s: %w", path, err)
	}

	entries := map[string]string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decode storage %s: %w", path, err)
		}
	}
	for k, v := range entries {
		r.cache.Set(k, v, cache.NoExpiration)
	}
	return r, nil
}

var _ contract.KeyValueStore = (*StorageRepository)(nil)

func (r *StorageRepository) Get(key string) (string, bool) {
	if x, found := r.cache.Get(key); found {
		if s, ok := x.(string); ok {
			return s, true
		}
	}
	return "", false
}

func (r *StorageRepository) Set(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, existed := r.cache.Get(key)
	r.cache.Set(key, value, cache.NoExpiration)
	if err := r.flush(); err != nil {
		if existed {
			r.cache.Set(key, previous, cache.NoExpiration)
		} else {
			r.cache.Delete(key)
		}
		return err
	}
	return nil
}

func (r *StorageRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, existed := r.cache.Get(key)
	if !existed {
		return nil
	}
	r.cache.Delete(key)
	if err := r.flush(); err != nil {
		r.cache.Set(key, previous, cache.NoExpiration)
		return err
	}
	return nil
}

func (r *StorageRepository) flush() error {
	if r.path == "" {
		return nil
	}

	entries := make(map[string]string, r.cache.ItemCount())
	for k, item := range r.cache.Items() {
		if s, ok := item.Object.(string); ok {
			entries[k] = s
		}
	}
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace storage: %w", err)
	}
	return nil
}
