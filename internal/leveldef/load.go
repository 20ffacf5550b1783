package leveldef

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file suffix of level definitions.
const Extension = ".level"

// DefaultLevel is the stage used when none is requested.
const DefaultLevel = "SkyLand"

//go:embed levels/*.level
var builtinLevels embed.FS

// Path returns the conventional location of a level under root.
func Path(root, name string) string {
	return filepath.Join(root, name+Extension)
}

// Load reads <root>/<name>.level.
func Load(root, name string) (*Definition, error) {
	path := Path(root, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("leveldef: cannot open %s: %w", path, err)
	}
	defer f.Close()

	def, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("leveldef: %s: %w", path, err)
	}
	def.Name = name
	return def, nil
}

// LoadBuiltin reads one of the levels shipped inside the binary.
func LoadBuiltin(name string) (*Definition, error) {
	f, err := builtinLevels.Open("levels/" + name + Extension)
	if err != nil {
		return nil, fmt.Errorf("leveldef: no builtin level %q: %w", name, err)
	}
	defer f.Close()

	def, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("leveldef: builtin %s: %w", name, err)
	}
	def.Name = name
	return def, nil
}

// Open loads a level from root, or from the builtin set when root is empty.
func Open(root, name string) (*Definition, error) {
	if name == "" {
		name = DefaultLevel
	}
	if root == "" {
		return LoadBuiltin(name)
	}
	return Load(root, name)
}

// List returns the sorted level names found in root. An empty root lists the
// builtin levels.
func List(root string) ([]string, error) {
	var paths []string
	if root == "" {
		entries, err := builtinLevels.ReadDir("levels")
		if err != nil {
			return nil, fmt.Errorf("leveldef: cannot list builtin levels: %w", err)
		}
		for _, e := range entries {
			paths = append(paths, e.Name())
		}
	} else {
		matches, err := filepath.Glob(filepath.Join(root, "*"+Extension))
		if err != nil {
			return nil, fmt.Errorf("leveldef: cannot list %s: %w", root, err)
		}
		paths = matches
	}

	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, strings.TrimSuffix(filepath.Base(p), Extension))
	}
	sort.Strings(names)
	return names, nil
}
