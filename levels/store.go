package levels

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Entry describes a saved level.
type Entry struct {
	Name      string
	Timestamp int64
}

// Store persists level documents and their preview images.
type Store interface {
	Save(name string, doc *Document, preview []byte) error
	Load(name string) (*Document, error)
	Preview(name string) ([]byte, error)
	List() ([]Entry, error)
	Delete(name string) error
}

// SortEntries orders entries oldest first, breaking ties by name.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Timestamp != entries[j].Timestamp {
			return entries[i].Timestamp < entries[j].Timestamp
		}
		return entries[i].Name < entries[j].Name
	})
}

// NextName returns the first unused name of the form L1, L2, ...
func NextName(s Store) (string, error) {
	entries, err := s.List()
	if err != nil {
		return "", fmt.Errorf("levels: next name: %w", err)
	}
	used := make(map[string]bool, len(entries))
	for _, e := range entries {
		used[e.Name] = true
	}
	for n := 1; ; n++ {
		name := "L" + strconv.Itoa(n)
		if !used[name] {
			return name, nil
		}
	}
}

// Next returns the saved level after current in list order, wrapping
// around. An unknown current starts from the first level.
func Next(s Store, current string) (string, error) {
	entries, err := s.List()
	if err != nil {
		return "", fmt.Errorf("levels: next level: %w", err)
	}
	if len(entries) == 0 {
		return "", ErrNotFound
	}
	for i, e := range entries {
		if e.Name == current {
			return entries[(i+1)%len(entries)].Name, nil
		}
	}
	return entries[0].Name, nil
}

// Find returns the entries whose name contains substr, case-insensitively.
func Find(entries []Entry, substr string) []Entry {
	substr = strings.ToLower(substr)
	var out []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), substr) {
			out = append(out, e)
		}
	}
	return out
}
