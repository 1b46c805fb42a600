package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	t.Run("accepts common addresses", func(t *testing.T) {
		require.True(t, IsValidEmail("jane.doe@example.com"))
		require.True(t, IsValidEmail("tenant+unit4@building-portal.io"))
		require.True(t, IsValidEmail("  padded@example.org  "))
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		require.False(t, IsValidEmail(""))
		require.False(t, IsValidEmail("no-at-sign.example.com"))
		require.False(t, IsValidEmail("missing-tld@example"))
		require.False(t, IsValidEmail("@example.com"))
		require.False(t, IsValidEmail("two words@example.com"))
	})
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	require.True(t, IsBlank(""))
	require.True(t, IsBlank("   \t\n"))
	require.False(t, IsBlank(" x "))
}

func TestLengthBetween(t *testing.T) {
	t.Parallel()

	t.Run("counts runes after trimming", func(t *testing.T) {
		require.True(t, LengthBetween("  abc  ", 3, 3))
		require.False(t, LengthBetween("ab", 3, 50))
	})

	t.Run("multi-byte runes count once", func(t *testing.T) {
		require.True(t, LengthBetween("ééé", 3, 3))
	})
}
