package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPacked(t *testing.T) {
	assert.Equal(t, int32(3), Palette(3).Packed())
	assert.Equal(t, int32(11), Palette(11).Packed())
	assert.Equal(t, int32(208), Palette(208).Packed())
	assert.Equal(t, int32(0x0100_0000|0x12_34_56), FromRGB(0x12, 0x34, 0x56).Packed())
	assert.Equal(t, int32(-1), Color{}.Packed())
}

func TestRGBBlackDoesNotCollideWithPaletteZero(t *testing.T) {
	black := FromRGB(0, 0, 0)
	assert.NotEqual(t, Palette(0).Packed(), black.Packed())
	assert.Equal(t, int32(0x0100_0000), black.Packed())
}

func TestFromPackedRoundTrip(t *testing.T) {
	for _, c := range []Color{
		{},
		Palette(0),
		Palette(7),
		Palette(8),
		Palette(15),
		Palette(255),
		FromRGB(0, 0, 0),
		FromRGB(255, 128, 1),
	} {
		assert.Equal(t, c, FromPacked(c.Packed()))
	}
}

func TestDefaultIsPresentButNotSet(t *testing.T) {
	d := Default()
	assert.True(t, d.IsPresent())
	assert.False(t, d.IsSet())
	// The explicit default has no packed representation of its own.
	assert.Equal(t, int32(-1), d.Packed())

	assert.False(t, Color{}.IsPresent())
	assert.True(t, Palette(3).IsPresent())
	assert.True(t, Palette(3).IsSet())
}

func TestPaletteTruncates(t *testing.T) {
	assert.Equal(t, Palette(255), Palette(300))
	assert.Equal(t, Palette(0), Palette(-2))
}
