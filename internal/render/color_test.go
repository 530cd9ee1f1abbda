package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"#f00":        {R: 0xff, A: 0xff},
		"#0f08":       {G: 0xff, A: 0x88},
		"#1e90ff":     {R: 0x1e, G: 0x90, B: 0xff, A: 0xff},
		"#11223344":   {R: 0x11, G: 0x22, B: 0x33, A: 0x44},
		" Red ":       {R: 0xff, A: 0xff},
		"transparent": {},
	}
	for in, want := range cases {
		got, ok := LookupColor(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "#12", "#ggg", "notacolour"} {
		_, ok := LookupColor(in)
		assert.False(t, ok, in)
	}
}

func TestParseColorFallsBackToBlack(t *testing.T) {
	assert.Equal(t, color.Black, ParseColor("bogus"))
}

func TestFormatColor(t *testing.T) {
	assert.Equal(t, "#1e90ff", FormatColor(color.NRGBA{R: 0x1e, G: 0x90, B: 0xff, A: 0xff}))
	assert.Equal(t, "#00000080", FormatColor(color.NRGBA{A: 0x80}))

	c, ok := LookupColor(FormatColor(color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}))
	assert.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}, c)
}
