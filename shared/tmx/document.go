package tmx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LoadFunc reads the raw bytes of a document. It reports ok=false when it does
// not know the path, letting the loader fall through to the next source.
type LoadFunc func(path string) (data []byte, ok bool, err error)

// Loader reads TMX/TSX documents. It tries Custom first, then an embedded
// resource in Resources whose dotted name ends with the dotted path, and
// finally the filesystem.
type Loader struct {
	Custom    LoadFunc
	Resources fs.FS
}

// FSLoader returns a loader reading slash-separated paths from fsys, such as
// an embed.FS or os.DirFS. Relative references resolve inside fsys.
func FSLoader(fsys fs.FS) *Loader {
	return &Loader{
		Custom: func(p string) ([]byte, bool, error) {
			data, err := fs.ReadFile(fsys, path.Clean(filepath.ToSlash(p)))
			if errors.Is(err, fs.ErrNotExist) {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, err
			}
			return data, true, nil
		},
	}
}

// Document is a loaded XML document together with the directory that
// relative references inside it resolve against. BaseDir is empty for
// documents served from Resources.
type Document struct {
	Path    string
	BaseDir string
	Data    []byte
}

// ReadXML loads the document at p.
func (l *Loader) ReadXML(p string) (*Document, error) {
	if l != nil && l.Custom != nil {
		data, ok, err := l.Custom(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		if ok {
			return &Document{Path: p, BaseDir: dirOf(p), Data: data}, nil
		}
	}

	if l != nil && l.Resources != nil {
		data, ok, err := readResource(l.Resources, p)
		if err != nil {
			return nil, fmt.Errorf("read resource %s: %w", p, err)
		}
		if ok {
			return &Document{Path: p, Data: data}, nil
		}
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p)
		}
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return &Document{Path: p, BaseDir: dirOf(p), Data: data}, nil
}

// Join resolves a path referenced from inside the document.
func (d *Document) Join(rel string) string {
	if rel == "" || d.BaseDir == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(d.BaseDir, rel)
}

// Decode unmarshals the document's XML into v.
func (d *Document) Decode(v any) error {
	dec := xml.NewDecoder(bytes.NewReader(d.Data))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", d.Path, err)
	}
	return nil
}

func dirOf(p string) string {
	dir := filepath.Dir(p)
	if dir == "." {
		return ""
	}
	return dir
}

// dotted turns "levels/maps\\a.tmx" into "levels.maps.a.tmx".
func dotted(p string) string {
	p = strings.ReplaceAll(p, "\\", ".")
	return strings.ReplaceAll(p, "/", ".")
}

func readResource(fsys fs.FS, p string) ([]byte, bool, error) {
	want := dotted(strings.TrimLeft(p, "./\\"))
	if want == "" {
		return nil, false, nil
	}

	var found string
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if n := dotted(name); n == want || strings.HasSuffix(n, "."+want) {
			found = name
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if found == "" {
		return nil, false, nil
	}

	data, err := fs.ReadFile(fsys, path.Clean(found))
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
