package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phishguard/phishguard/internal/domain"
)

// FileListStore implements ports.DomainListStore on a JSON file: a plain
// array of strings, the format the feed pipeline has always used. Suited to
// single-box deployments that don't run Postgres.
type FileListStore struct {
	path string
}

// NewFileListStore creates a file-backed domain list store.
func NewFileListStore(path string) *FileListStore {
	return &FileListStore{path: path}
}

// SaveDomains writes the full list, replacing the previous file atomically
// (write to a temp file in the same directory, then rename).
func (s *FileListStore) SaveDomains(ctx context.Context, domains []string) error {
	data, err := json.MarshalIndent(domains, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode domain list: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write domain list: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace domain list: %w", err)
	}
	return nil
}

// LoadDomains reads the JSON array. A missing file yields an empty list, not
// an error: a fresh deployment simply has no feed data yet.
func (s *FileListStore) LoadDomains(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read domain list: %w", err)
	}

	var domains []string
	if err := json.Unmarshal(data, &domains); err != nil {
		return nil, fmt.Errorf("failed to parse domain list: %w", err)
	}
	return domains, nil
}

// Close is a no-op for the file store.
func (s *FileListStore) Close() error {
	return nil
}

// LoadScaler reads the {"mins": [...], "maxs": [...]} file the training
// pipeline persists next to the model weights.
func LoadScaler(path string) (domain.ScalerParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ScalerParams{}, fmt.Errorf("failed to read scaler file: %w", err)
	}

	var scaler domain.ScalerParams
	if err := json.Unmarshal(data, &scaler); err != nil {
		return domain.ScalerParams{}, fmt.Errorf("failed to parse scaler file: %w", err)
	}
	return scaler, nil
}
