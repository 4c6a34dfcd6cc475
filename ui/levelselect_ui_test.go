package ui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterLevels(t *testing.T) {
	levels := []string{"caves", "level1", "Level2"}
	require.Equal(t, levels, FilterLevels(levels, ""))
	require.Equal(t, levels, FilterLevels(levels, "  "))
	require.Equal(t, []string{"level1", "Level2"}, FilterLevels(levels, "LEV"))
	require.Equal(t, []string{"caves"}, FilterLevels(levels, "ave"))
	require.Empty(t, FilterLevels(levels, "x"))
}
