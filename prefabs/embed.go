package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml scenes/*.yaml
var PrefabsFS embed.FS

// LoadScript reads a tengo script, preferring the copy on disk so edits
// are picked up by hot reload.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// Load reads a prefab file from disk, falling back to the embedded copy.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// SceneFile maps a bare scene name such as "demo.yaml" to its prefab path.
func SceneFile(name string) string {
	s := cleanPrefabPath(name)
	if s == "" || strings.HasPrefix(s, "scenes/") {
		return s
	}
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return "scenes/" + s
}

// Scenes lists the embedded scene files.
func Scenes() []string {
	matches, err := fs.Glob(PrefabsFS, "scenes/*.yaml")
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return "scripts/" + s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
