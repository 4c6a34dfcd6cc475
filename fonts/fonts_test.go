package fonts

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, LoadDefaults())
	for _, name := range []FontName{Regular, Mono, Title} {
		require.True(t, Loaded(name), name)
	}
	small := Regular.Get().Metrics().Height
	large := Title.Get().Metrics().Height
	require.Greater(t, large, small)
	require.Positive(t, font.MeasureString(Mono.Get(), "slide"))
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	require.Error(t, LoadFont("bad", []byte("not a font")))
	require.False(t, Loaded("bad"))
	require.Panics(t, func() { FontName("bad").Get() })
}
