package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/doomerang-tmx/shared/tmx"
)

// expandMaps turns the arguments into a sorted list of .tmx files; directories
// contribute their .tmx files, non-recursively.
func expandMaps(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			out = append(out, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.tmx"))
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil, fmt.Errorf("no .tmx files in %s", strings.Join(args, " "))
	}
	return out, nil
}

// rooted returns a filesystem rooted at / and the slash path of p in it, so
// relative references may climb out of the map's directory.
func rooted(p string) (fs.FS, string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, "", err
	}
	vol := filepath.VolumeName(abs)
	rel := strings.TrimPrefix(filepath.ToSlash(abs[len(vol):]), "/")
	return os.DirFS(vol + "/"), rel, nil
}

// loadMap decodes the map at p through a rooted filesystem.
func loadMap(p string) (*tmx.Map, fs.FS, string, error) {
	fsys, rel, err := rooted(p)
	if err != nil {
		return nil, nil, "", err
	}
	m, err := tmx.LoadMap(tmx.FSLoader(fsys), rel)
	if err != nil {
		return nil, nil, "", err
	}
	return m, fsys, rel, nil
}
