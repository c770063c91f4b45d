// Package memory is a process-local Provider. Nothing survives exit; it backs
// throwaway sessions (memory://) and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/gamttori/gamttori/internal/models"
)

type Store struct {
	mu       sync.RWMutex
	data     map[string]string
	settings *models.Settings
}

func New() *Store {
	return &Store{data: map[string]string{}}
}

func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		def := models.DefaultSettings()
		s.settings = &def
	}
	return nil
}

// Load behaves like Init: there is nothing on disk to validate.
func (s *Store) Load() error { return s.Init() }

func (s *Store) Close() error { return nil }

func (s *Store) GetConfigPath() string { return "memory" }

func (s *Store) GetSettings() (models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return models.DefaultSettings(), nil
	}
	return *s.settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &settings
	return nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *Store) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
