package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store persists synthesized WAV files under randomly generated identifiers.
// Existence is defined solely by filesystem presence; no manifest is kept and
// nothing is deleted here, so a retention policy can be layered on top.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create assets directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Put writes the audio bytes under a fresh identifier and returns the asset
// name.
func (s *Store) Put(data []byte) (string, error) {
	name := uuid.NewString() + ".wav"
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio asset: %w", err)
	}
	return name, nil
}

// Resolve returns the on-disk path of a stored asset name.
func (s *Store) Resolve(name string) string {
	return filepath.Join(s.dir, name)
}

// Dir returns the directory served at the public audio path.
func (s *Store) Dir() string {
	return s.dir
}
