package tmx_test

import (
	"path/filepath"
	"testing"

	"github.com/automoto/doomerang-tmx/shared/tmx"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func loadTestMap(t *testing.T, name string) *tmx.Map {
	t.Helper()
	m, err := tmx.LoadMap(nil, filepath.Join("testdata", name))
	require.NoError(t, err)
	return m
}

func groundTiles(t *testing.T, m *tmx.Map) []tmx.LayerTile {
	t.Helper()
	l, ok := m.FindLayer("ground")
	require.True(t, ok, "ground layer")
	require.Equal(t, tmx.LayerTiles, l.Kind)
	return l.Tiles.Tiles
}

func TestEncodingsDecodeIdentically(t *testing.T) {
	want := groundTiles(t, loadTestMap(t, "xml.tmx"))
	require.Len(t, want, 16)

	for _, name := range []string{"csv.tmx", "base64.tmx", "base64_zlib.tmx", "base64_gzip.tmx"} {
		t.Run(name, func(t *testing.T) {
			got := groundTiles(t, loadTestMap(t, name))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s decoded differently from xml.tmx (-want+got):\n%v", name, diff)
			}
		})
	}
}

func TestDecodedCoordinatesAndFlags(t *testing.T) {
	tiles := groundTiles(t, loadTestMap(t, "csv.tmx"))

	for i, lt := range tiles {
		require.Equal(t, i%4, lt.X, "x of index %d", i)
		require.Equal(t, i/4, lt.Y, "y of index %d", i)
	}

	require.Equal(t, tmx.LayerTile{GID: 6, X: 1, Y: 1}, tiles[5])
	require.Equal(t, tmx.LayerTile{GID: 1, Flags: tmx.FlippedHorizontally, X: 1, Y: 2}, tiles[9])
	require.Equal(t, tmx.LayerTile{GID: 3, Flags: tmx.FlippedVertically | tmx.FlippedDiagonally, X: 2, Y: 3}, tiles[14])
	require.True(t, tiles[6].IsEmpty())
}

func TestChunkedLayer(t *testing.T) {
	m := loadTestMap(t, "infinite.tmx")
	require.True(t, m.Infinite)

	l, ok := m.FindLayer("ground")
	require.True(t, ok)
	tl := l.Tiles
	require.Equal(t, []tmx.Chunk{{X: -2, Y: -1, Width: 2, Height: 2}, {X: 0, Y: 1, Width: 2, Height: 1}}, tl.Chunks)
	require.Equal(t, [4]int{-2, -1, 4, 3}, [4]int{tl.X, tl.Y, tl.Width, tl.Height})

	want := []tmx.LayerTile{
		{GID: 2, X: -2, Y: -1}, {GID: 0, X: -1, Y: -1},
		{GID: 0, X: -2, Y: 0}, {GID: 6, X: -1, Y: 0},
		{GID: 3, X: 0, Y: 1}, {GID: 4, X: 1, Y: 1},
	}
	if diff := cmp.Diff(want, tl.Tiles); diff != "" {
		t.Errorf("chunk tiles mismatch (-want+got):\n%v", diff)
	}
}

const tilesetTSX = `<tileset name="t" tilewidth="16" tileheight="16" tilecount="4" columns="2">
 <image source="t.png" width="32" height="32"/>
</tileset>`

func layerMap(data string) map[string]string {
	return map[string]string{
		"t.tsx": tilesetTSX,
		"m.tmx": `<map orientation="orthogonal" width="2" height="2" tilewidth="16" tileheight="16">
 <tileset firstgid="1" source="t.tsx"/>
 <layer id="1" name="l" width="2" height="2">` + data + `</layer>
</map>`,
	}
}

func TestLayerDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
		want error
	}{
		{"unsupported encoding", `<data encoding="hex">0102</data>`, tmx.ErrUnsupportedEncoding},
		{"malformed csv token", `<data encoding="csv">1,x,2,3</data>`, tmx.ErrMalformedCSV},
		{"empty csv token", `<data encoding="csv">1,,2,3</data>`, tmx.ErrMalformedCSV},
		{"csv gid overflow", `<data encoding="csv">1,2,3,4294967296</data>`, tmx.ErrGIDOverflow},
		{"csv gid out of range", `<data encoding="csv">1,2,3,99999999999999999999999</data>`, tmx.ErrGIDOverflow},
		{"xml gid overflow", `<data><tile gid="8589934592"/></data>`, tmx.ErrGIDOverflow},
		{"unsupported compression", `<data encoding="base64" compression="zstd">AAAAAA==</data>`, tmx.ErrUnsupportedCompression},
		{"csv with compression", `<data encoding="csv" compression="zlib">1,2,3,4</data>`, tmx.ErrUnsupportedCompression},
		{"truncated base64 stream", `<data encoding="base64">AQAA</data>`, tmx.ErrMalformedData},
		{"invalid base64", `<data encoding="base64">!!!!</data>`, tmx.ErrMalformedData},
		{"broken zlib stream", `<data encoding="base64" compression="zlib">AQAAAA==</data>`, tmx.ErrMalformedData},
		{"missing data", ``, tmx.ErrMissingData},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tmx.LoadMap(memLoader(layerMap(tc.data)), "m.tmx")
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCSVAcceptsNewlineSeparatedRows(t *testing.T) {
	m, err := tmx.LoadMap(memLoader(layerMap("<data encoding=\"csv\">\n1,2\n3,4\n</data>")), "m.tmx")
	require.NoError(t, err)

	var gids []tmx.GID
	for _, lt := range m.Layers[0].Tiles.Tiles {
		gids = append(gids, lt.GID)
	}
	require.Equal(t, []tmx.GID{1, 2, 3, 4}, gids)
}
