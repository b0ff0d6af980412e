package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PvttJebus/OhMyGord/params"
)

var (
	ErrNotFound    = errors.New("levels: level not found")
	ErrInvalidName = errors.New("levels: invalid level name")
)

// Document is the persisted form of a level. Field names follow the level
// files written by earlier versions of the game so those keep loading.
type Document struct {
	Name      string         `json:"name,omitempty"`
	Timestamp int64          `json:"timestamp"`
	Tiles     []TileRecord   `json:"tiles"`
	Objects   []ObjectRecord `json:"objects"`
	Groups    []GroupRecord  `json:"groups,omitempty"`
}

type Vec3Int struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type TileRecord struct {
	Position Vec3Int `json:"position"`
	TileName string  `json:"tileName"`
}

type ObjectRecord struct {
	PrefabIndex int                `json:"prefabIndex"`
	Position    Vec3               `json:"position"`
	Rotation    float64            `json:"rotation"`
	Size        Vec2               `json:"size"`
	Scale       Vec2               `json:"scale"`
	Parameters  []params.Parameter `json:"parameters"`
}

// GroupRecord lists members by their index in Document.Objects.
type GroupRecord struct {
	Name    string `json:"name"`
	Members []int  `json:"members"`
}

func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("levels: marshal: %w", err)
	}
	return data, nil
}

func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	return &doc, nil
}

var validName = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// CleanName strips directories and the .json extension and validates the
// remaining level name.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(filepath.Base(filepath.ToSlash(name)))
	name = strings.TrimSuffix(name, ".json")
	if !validName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

// IsLevelFile reports whether path looks like a saved level.
func IsLevelFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
