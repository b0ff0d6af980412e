package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// DirStore keeps each level as <dir>/<name>.json next to its preview image.
type DirStore struct {
	Dir           string
	PreviewFormat string
}

func NewDirStore(dir, previewFormat string) *DirStore {
	if previewFormat == "" {
		previewFormat = FormatPNG
	}
	return &DirStore{Dir: dir, PreviewFormat: previewFormat}
}

func (s *DirStore) levelPath(name string) string {
	return filepath.Join(s.Dir, name+".json")
}

func (s *DirStore) previewPath(name string) string {
	return filepath.Join(s.Dir, name+"."+s.PreviewFormat)
}

func (s *DirStore) Save(name string, doc *Document, preview []byte) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("levels: save %s: %w", name, err)
	}
	path := s.levelPath(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("levels: save %s: %w", name, err)
	}
	if len(preview) > 0 {
		if err := os.WriteFile(s.previewPath(name), preview, 0o644); err != nil {
			log.Printf("levels: preview for %s: %v", name, err)
		}
	}
	log.Printf("Saved level: %s", path)
	return nil
}

// Load reads a level from disk, falling back to the levels built into the
// binary.
func (s *DirStore) Load(name string) (*Document, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.levelPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		data, err = LoadBuiltin(name)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	doc, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return doc, nil
}

func (s *DirStore) Preview(name string) ([]byte, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.previewPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: preview %s", ErrNotFound, name)
	}
	return data, err
}

// List returns every level in the directory, oldest first. Files that fail
// to parse are logged and left out.
func (s *DirStore) List() ([]Entry, error) {
	files, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("levels: list %s: %w", s.Dir, err)
	}
	var entries []Entry
	for _, f := range files {
		if f.IsDir() || !IsLevelFile(f.Name()) {
			continue
		}
		name := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
		data, err := os.ReadFile(filepath.Join(s.Dir, f.Name()))
		if err != nil {
			log.Printf("levels: read %s: %v", f.Name(), err)
			continue
		}
		doc, err := Unmarshal(data)
		if err != nil {
			log.Printf("levels: skipping %s: %v", f.Name(), err)
			continue
		}
		entries = append(entries, Entry{Name: name, Timestamp: doc.Timestamp})
	}
	SortEntries(entries)
	return entries, nil
}

func (s *DirStore) Delete(name string) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(s.levelPath(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("levels: delete %s: %w", name, err)
	}
	if err := os.Remove(s.previewPath(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("levels: delete preview %s: %v", name, err)
	}
	return nil
}
