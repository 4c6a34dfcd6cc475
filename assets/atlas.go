package assets

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"path"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/automoto/doomerang-tmx/shared/tilemap"
)

// AtlasRegistry owns the atlas images of a level. Tiles refer to them by
// tilemap.AtlasID only, so the registry can be released as a whole when the
// level is unloaded.
type AtlasRegistry struct {
	fsys   fs.FS
	images []*ebiten.Image
	byPath map[string]tilemap.Atlas
	failed map[string]bool
}

// NewAtlasRegistry returns a registry loading images from fsys on first use.
func NewAtlasRegistry(fsys fs.FS) *AtlasRegistry {
	return &AtlasRegistry{
		fsys:   fsys,
		byPath: make(map[string]tilemap.Atlas),
		failed: make(map[string]bool),
	}
}

func decodeImage(data []byte) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(data))
	return img, err
}

// Atlas implements tilemap.AtlasSource. Images that fail to load are reported
// once and then treated as missing.
func (r *AtlasRegistry) Atlas(p string) (tilemap.Atlas, bool) {
	key := path.Clean(filepath.ToSlash(p))
	if a, ok := r.byPath[key]; ok {
		return a, true
	}
	if r.failed[key] {
		return tilemap.Atlas{}, false
	}

	img, err := r.load(key)
	if err != nil {
		log.Printf("Warning: atlas %s: %v", key, err)
		r.failed[key] = true
		return tilemap.Atlas{}, false
	}

	b := img.Bounds()
	a := tilemap.Atlas{ID: tilemap.AtlasID(len(r.images)), Width: b.Dx(), Height: b.Dy()}
	r.images = append(r.images, img)
	r.byPath[key] = a
	return a, true
}

func (r *AtlasRegistry) load(key string) (*ebiten.Image, error) {
	data, err := fs.ReadFile(r.fsys, key)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// Image returns the image behind id, or nil.
func (r *AtlasRegistry) Image(id tilemap.AtlasID) *ebiten.Image {
	if id < 0 || int(id) >= len(r.images) {
		return nil
	}
	return r.images[id]
}

// Len returns the number of loaded atlases.
func (r *AtlasRegistry) Len() int { return len(r.images) }

// Release frees every image. Handles handed out before are invalid afterwards.
func (r *AtlasRegistry) Release() {
	for _, img := range r.images {
		img.Deallocate()
	}
	r.images = nil
	r.byPath = make(map[string]tilemap.Atlas)
	r.failed = make(map[string]bool)
}
