// Package filekv keeps each key in its own file using diskv, for setups
// where a database file is unwanted (synced folders, read-only inspection).
package filekv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/gamttori/gamttori/internal/models"
)

const (
	kvDir       = "kv"
	settingsKey = "settings"
	cacheSize   = 1024 * 1024 // 1MB
)

type Store struct {
	basePath string
	kv       *diskv.Diskv
	meta     *diskv.Diskv
}

func New(basePath string) *Store {
	return &Store{basePath: basePath}
}

// keyToPath groups keys by their first '_' segment so a directory listing
// reads like the key space (mood/, poem/, questions/ ...).
func keyToPath(key string) *diskv.PathKey {
	family, _, ok := strings.Cut(key, "_")
	if !ok || family == "" {
		family = "misc"
	}
	return &diskv.PathKey{Path: []string{family}, FileName: key}
}

func pathToKey(pk *diskv.PathKey) string {
	return pk.FileName
}

func (s *Store) open() {
	s.kv = diskv.New(diskv.Options{
		BasePath:          filepath.Join(s.basePath, kvDir),
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      cacheSize,
	})
	s.meta = diskv.New(diskv.Options{
		BasePath:     s.basePath,
		CacheSizeMax: cacheSize,
	})
}

func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Join(s.basePath, kvDir), 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	s.open()
	if !s.meta.Has(settingsKey) {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() error {
	if s.kv != nil {
		return nil
	}
	if _, err := os.Stat(filepath.Join(s.basePath, kvDir)); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'gamttori init' first")
	}
	s.open()
	return nil
}

func (s *Store) Close() error {
	s.kv = nil
	s.meta = nil
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.basePath
}

func (s *Store) GetSettings() (models.Settings, error) {
	raw, err := s.meta.Read(settingsKey)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Settings{}, fmt.Errorf("settings not found")
		}
		return models.Settings{}, err
	}
	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return models.MapToSettings(data)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	raw, err := json.Marshal(models.SettingsToMap(settings))
	if err != nil {
		return err
	}
	return s.meta.Write(settingsKey, raw)
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	raw, err := s.kv.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(raw), true, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	return s.kv.Write(key, []byte(value))
}

func (s *Store) Delete(_ context.Context, key string) error {
	if !s.kv.Has(key) {
		return nil
	}
	return s.kv.Erase(key)
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range s.kv.KeysPrefix(prefix, ctx.Done()) {
		keys = append(keys, k)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}
