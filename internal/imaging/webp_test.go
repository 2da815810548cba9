package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 212, G: 175, B: 55, A: 255})
		}
	}
	return img
}

func TestFit(t *testing.T) {
	cases := []struct {
		w, h         int
		wantW, wantH int
	}{
		{100, 50, 100, 50},
		{1024, 512, 512, 256},
		{300, 1200, 128, 512},
		{2000, 1, 512, 1},
	}

	for _, tc := range cases {
		out := Fit(solid(tc.w, tc.h), MaxSide)
		assert.Equal(t, tc.wantW, out.Bounds().Dx())
		assert.Equal(t, tc.wantH, out.Bounds().Dy())
	}
}

func TestToWebP(t *testing.T) {
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, solid(800, 400)))

	out, err := ToWebP(&in)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 256, cfg.Height)
}

func TestToWebP_Garbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}
