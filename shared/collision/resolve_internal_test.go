package collision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushProbeOrder(t *testing.T) {
	var probes []Vec
	blocked := func(p Vec) bool {
		probes = append(probes, p)
		return false
	}

	target := Vec{X: 10, Y: 10}
	require.Equal(t, Vec{}, resolve(Push, Vec{}, target, blocked))
	require.Equal(t, []Vec{
		{10, 10},
		{10, 8},
		{12, 10},
		{10, 12},
		{8, 10},
		{12, 8},
		{12, 12},
		{8, 12},
		{8, 8},
	}, probes)
}

func TestPushReturnsFirstClearProbe(t *testing.T) {
	clearAt := map[Vec]bool{{8, 10}: true, {12, 12}: true}
	got := resolve(Push, Vec{}, Vec{X: 10, Y: 10}, func(p Vec) bool { return clearAt[p] })
	require.Equal(t, Vec{8, 10}, got)
}

func TestSlidePrefersX(t *testing.T) {
	target := Vec{X: 5, Y: 5}
	free := func(p Vec) bool { return p != target }
	require.Equal(t, Vec{5, 0}, resolve(Slide, Vec{}, target, free))
}
