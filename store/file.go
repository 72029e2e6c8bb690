package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFilePath is where the file backend keeps its document
var DefaultFilePath = filepath.Join("data", "highscore.json")

type scoreFile struct {
	Values map[string]int `json:"values"`
}

// FileStore keeps the high score in a JSON document. Other keys found in the
// document are preserved on write.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultFilePath
	}
	return &FileStore{path: path}
}

func (s *FileStore) Get(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return 0, err
	}
	return doc.Values[HighScoreKey], nil
}

func (s *FileStore) Set(ctx context.Context, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Values[HighScoreKey] = score

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	// Write-then-rename, readers see the old or the new document
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (s *FileStore) load() (scoreFile, error) {
	doc := scoreFile{Values: make(map[string]int)}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if doc.Values == nil {
		doc.Values = make(map[string]int)
	}
	return doc, nil
}
