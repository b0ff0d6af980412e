package levels

import (
	"embed"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// LoadBuiltin reads a level shipped inside the binary.
func LoadBuiltin(name string) ([]byte, error) {
	return fs.ReadFile(LevelsFS, name+".json")
}

// Builtins lists the levels shipped inside the binary.
func Builtins() []string {
	matches, _ := fs.Glob(LevelsFS, "*.json")
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[:len(m)-len(".json")])
	}
	return out
}
