package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

var (
	//go:embed all:levels
	assetFS embed.FS
)

// LevelsDir is the directory of the embedded levels inside FS.
const LevelsDir = "levels"

// FS returns the embedded asset filesystem.
func FS() fs.FS { return assetFS }

// LevelNames returns the stems of every .tmx file in dir of fsys, sorted.
func LevelNames(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read levels directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ".tmx" {
			names = append(names, strings.TrimSuffix(entry.Name(), ".tmx"))
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no level files found in %s", dir)
	}
	sort.Strings(names)
	return names, nil
}
