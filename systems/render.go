package systems

import (
	"image"
	"math"

	"github.com/automoto/doomerang-tmx/assets"
	"github.com/automoto/doomerang-tmx/shared/tilemap"
	"github.com/automoto/doomerang-tmx/shared/tmx"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices keeps a draw call addressable by uint16 indices and on a
// whole quad.
const maxBatchVertices = 65532

// tileRenderer submits tilemap batches to an ebiten screen. GeoM maps map
// pixels to screen pixels.
type tileRenderer struct {
	screen  *ebiten.Image
	atlases *assets.AtlasRegistry
	geoM    ebiten.GeoM

	vertices []ebiten.Vertex
	indices  []uint16

	// stats of the current frame, shown by the debug overlay
	drawCalls int
	quads     int
}

var _ tilemap.Renderer = (*tileRenderer)(nil)

func (r *tileRenderer) DrawTriangles(atlas tilemap.AtlasID, vertices []tilemap.Vertex, opts tilemap.DrawOptions) {
	img := r.atlases.Image(atlas)
	if img == nil || len(vertices) == 0 {
		return
	}
	for start := 0; start < len(vertices); start += maxBatchVertices {
		end := min(start+maxBatchVertices, len(vertices))
		r.vertices = appendVertices(r.vertices[:0], vertices[start:end], opts, r.geoM)
		r.indices = appendIndices(r.indices[:0], end-start)
		r.screen.DrawTriangles(r.vertices, r.indices, img, nil)
		r.drawCalls++
	}
	r.quads += len(vertices) / 6
}

// appendVertices converts batch vertices to screen space. Colors are
// premultiplied, so every channel carries the alpha.
func appendVertices(dst []ebiten.Vertex, vs []tilemap.Vertex, opts tilemap.DrawOptions, geoM ebiten.GeoM) []ebiten.Vertex {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	opacity := float32(opts.Opacity)
	if opts.Opacity == 0 {
		opacity = 1
	}
	for _, v := range vs {
		x := float64(v.DstX)*scale + opts.OffsetX
		y := float64(v.DstY)*scale + opts.OffsetY
		sx, sy := geoM.Apply(x, y)
		a := v.ColorA * opacity
		dst = append(dst, ebiten.Vertex{
			DstX:   float32(sx),
			DstY:   float32(sy),
			SrcX:   v.SrcX,
			SrcY:   v.SrcY,
			ColorR: a,
			ColorG: a,
			ColorB: a,
			ColorA: a,
		})
	}
	return dst
}

// appendIndices returns 0..n-1; batches carry six vertices per quad, so no
// vertex is shared.
func appendIndices(dst []uint16, n int) []uint16 {
	for i := 0; i < n; i++ {
		dst = append(dst, uint16(i))
	}
	return dst
}

// layerTransform is the state a layer inherits from its enclosing groups.
type layerTransform struct {
	opacity              float64
	offsetX, offsetY     float64
	parallaxX, parallaxY float64
}

func (t layerTransform) with(l *tilemap.Layer) layerTransform {
	return layerTransform{
		opacity:   t.opacity * l.Opacity,
		offsetX:   t.offsetX + l.OffsetX,
		offsetY:   t.offsetY + l.OffsetY,
		parallaxX: t.parallaxX * l.ParallaxX,
		parallaxY: t.parallaxY * l.ParallaxY,
	}
}

// shift returns the layer's total offset for a camera centred on camX, camY.
// A parallax factor below 1 makes the layer trail the camera.
func (t layerTransform) shift(camX, camY float64) (float64, float64) {
	return t.offsetX + camX*(1-t.parallaxX), t.offsetY + camY*(1-t.parallaxY)
}

// view is the camera state a level is drawn with.
type view struct {
	camX, camY float64
	zoom       float64
	w, h       float64
}

func (v view) geoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-v.camX, -v.camY)
	g.Scale(v.zoom, v.zoom)
	g.Translate(v.w/2, v.h/2)
	return g
}

// visible returns the map pixel rectangle on screen.
func (v view) visible() (x0, y0, x1, y1 float64) {
	hw, hh := v.w/2/v.zoom, v.h/2/v.zoom
	return v.camX - hw, v.camY - hh, v.camX + hw, v.camY + hh
}

// drawLayers draws layers in document order.
func drawLayers(r *tileRenderer, layers []tilemap.Layer, parent layerTransform, v view) {
	for i := range layers {
		l := &layers[i]
		if !l.Visible {
			continue
		}
		t := parent.with(l)
		ox, oy := t.shift(v.camX, v.camY)

		switch l.Kind {
		case tmx.LayerTiles:
			if l.Grid != nil {
				l.Grid.Draw(r, tilemap.DrawOptions{OffsetX: ox, OffsetY: oy, Scale: 1, Opacity: parent.opacity})
			}
		case tmx.LayerImage:
			drawImageLayer(r, l.Image, t.opacity, ox, oy, v)
		case tmx.LayerObjects:
			for j := range l.Objects {
				drawTileObject(r, &l.Objects[j], t.opacity, ox, oy)
			}
		case tmx.LayerGroup:
			drawLayers(r, l.Group, t, v)
		}
	}
}

// drawImageLayer draws the image once, or tiled over the visible area along
// the repeating axes.
func drawImageLayer(r *tileRenderer, il *tilemap.ImageLayer, opacity, ox, oy float64, v view) {
	if il == nil || il.Width <= 0 || il.Height <= 0 {
		return
	}
	img := r.atlases.Image(il.Atlas)
	if img == nil {
		return
	}

	x0, y0, x1, y1 := v.visible()
	cols := repeatSpan(il.RepeatX, ox, x0, x1, float64(il.Width))
	rows := repeatSpan(il.RepeatY, oy, y0, y1, float64(il.Height))

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(opacity))
	for _, y := range rows {
		for _, x := range cols {
			op.GeoM.Reset()
			op.GeoM.Translate(x, y)
			op.GeoM.Concat(r.geoM)
			r.screen.DrawImage(img, op)
			r.drawCalls++
		}
	}
}

// repeatSpan returns the positions an image of the given size is drawn at to
// cover [lo, hi), or just origin when it does not repeat.
func repeatSpan(repeat bool, origin, lo, hi, size float64) []float64 {
	if !repeat {
		return []float64{origin}
	}
	start := origin + math.Floor((lo-origin)/size)*size
	var out []float64
	for p := start; p < hi; p += size {
		out = append(out, p)
	}
	return out
}

// drawTileObject draws a tile object scaled to its size. Objects are anchored
// at their bottom-left corner and rotate around it.
func drawTileObject(r *tileRenderer, o *tilemap.Object, opacity, ox, oy float64) {
	if !o.Visible || !o.Tile.Drawable() {
		return
	}
	img := r.atlases.Image(o.Tile.Atlas)
	if img == nil {
		return
	}
	src := o.Tile.Src
	sub := img.SubImage(src).(*ebiten.Image)

	w, h := o.Width, o.Height
	if w == 0 || h == 0 {
		w, h = float64(src.Dx()), float64(src.Dy())
	}

	op := &ebiten.DrawImageOptions{}
	flipTile(&op.GeoM, o.Tile.Flags, src)
	op.GeoM.Scale(w/float64(src.Dx()), h/float64(src.Dy()))
	op.GeoM.Translate(0, -h)
	op.GeoM.Rotate(o.Rotation * math.Pi / 180)
	op.GeoM.Translate(o.X+ox, o.Y+oy)
	op.GeoM.Concat(r.geoM)
	op.ColorScale.ScaleAlpha(float32(opacity))
	r.screen.DrawImage(sub, op)
	r.drawCalls++
}

// flipTile mirrors a sub-image in place. Tile objects carry no diagonal flip.
func flipTile(g *ebiten.GeoM, f tmx.Flags, src image.Rectangle) {
	if f.Horizontal() {
		g.Scale(-1, 1)
		g.Translate(float64(src.Dx()), 0)
	}
	if f.Vertical() {
		g.Scale(1, -1)
		g.Translate(0, float64(src.Dy()))
	}
}
