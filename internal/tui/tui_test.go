package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/model"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "too long …", truncate("too long to fit here", 10))
	assert.Equal(t, "", truncate("anything", 0))
	assert.Equal(t, "a", truncate("abc", 1))

	// Rune-aware, not byte-aware.
	assert.Equal(t, "ação…", truncate("açãozinha", 5))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", formatDate(codec.Time{}))
	assert.Equal(t, "-", formatOptionalDate(nil))

	ts, err := codec.Decode("2026-03-15")
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-15", formatDate(ts))
	assert.Equal(t, "2026-03-15", formatOptionalDate(&ts))
}

func TestPaletteFollowsTheme(t *testing.T) {
	dark := paletteFor(model.ThemeDark)
	light := paletteFor(model.ThemeLight)
	assert.NotEqual(t, dark.fg, light.fg)

	// Unknown themes fall back to dark.
	assert.Equal(t, dark, paletteFor("neon"))
}

func TestJoinStrings(t *testing.T) {
	assert.Equal(t, "", joinStrings(nil))
	assert.Equal(t, "a", joinStrings([]string{"a"}))
	assert.Equal(t, "a, b, c", joinStrings([]string{"a", "b", "c"}))
}
