// Package prefs persists per-user dashboard state: favorite cities and
// quotes, conversion history, and last-viewed slots. It is the server-side
// model of what the browser front end keeps in local storage, expressed as a
// key-value store interface so the helpers are testable without a browser.
package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys, one record per key.
const (
	KeyFavoriteCities    = "infohub_favorite_cities"
	KeyFavoriteQuotes    = "infohub_favorite_quotes"
	KeyConversionHistory = "infohub_conversion_history"
	KeyLastWeather       = "infohub_last_weather"
	KeyLastCity          = "infohub_last_city"
	KeyLastForecast      = "infohub_last_forecast"
	KeyLastConversion    = "infohub_last_conversion"
	KeyLastQuote         = "infohub_last_quote"
	KeyLastTab           = "infohub_last_tab"
	KeyLastUnit          = "infohub_last_unit"
)

// Store is a durable key-value store for named records. Get returns ok=false
// for keys never written.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// FileStore implements Store with one file per key under a directory.
// Writes go through a temp file and rename so a record is never observed
// half-written.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates the directory if needed and returns a FileStore.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads the record for key.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set writes the record for key.
func (s *FileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

// Delete removes the record for key. Deleting an absent key is not an error.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore implements Store with a map. For tests.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
