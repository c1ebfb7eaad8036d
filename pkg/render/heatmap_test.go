package render

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHeatmapDimensions(t *testing.T) {
	matrix := [][]float64{
		{0.1, 0.2, 0.3},
		{0.4, 0.5, 0.6},
	}

	img := RenderHeatmap(matrix)

	bounds := img.Bounds()
	assert.Equal(t, 2, bounds.Dx(), "Width should equal the time-step count")
	assert.Equal(t, 3, bounds.Dy(), "Height should equal the bin count")
}

func TestRenderHeatmapEmpty(t *testing.T) {
	img := RenderHeatmap(nil)

	assert.Equal(t, 0, img.Bounds().Dx())
	assert.Equal(t, 0, img.Bounds().Dy())
}

func TestRenderHeatmapDeterministic(t *testing.T) {
	matrix := [][]float64{
		{0.0, 0.3, 0.7},
		{0.1, 0.5, 1.0},
	}

	first := RenderHeatmap(matrix)
	second := RenderHeatmap(matrix)

	assert.Equal(t, first.Pix, second.Pix, "Identical matrices should render byte-identical pixels")
}

func TestRenderHeatmapFrequencyFlip(t *testing.T) {
	// One time step, three bins: only bin 0 (lowest frequency) is hot
	matrix := [][]float64{{1.0, 0.0, 0.0}}

	img := RenderHeatmap(matrix)

	// Bin 0 renders at the bottom pixel row
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, img.RGBAAt(0, 2),
		"Lowest bin should render at the bottom as full red")
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 0, A: 255}, img.RGBAAt(0, 0),
		"Highest bin should render at the top")
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 0, A: 255}, img.RGBAAt(0, 1))
}

func TestRenderHeatmapSilenceIsBlack(t *testing.T) {
	matrix := make([][]float64, 4)
	for i := range matrix {
		matrix[i] = make([]float64, 8)
	}

	img := RenderHeatmap(matrix)

	for x := 0; x < 4; x++ {
		for y := 0; y < 8; y++ {
			c := img.RGBAAt(x, y)
			assert.Equal(t, color.RGBA{A: 255}, c, "Silence should render pure black at (%d,%d)", x, y)
		}
	}
}

func TestGradientColorBands(t *testing.T) {
	tests := []struct {
		name    string
		s       float64
		r, g, b uint8
	}{
		{"zero", 0.0, 0, 0, 0},
		{"near-black ramp", 0.005, 0, 0, 10},
		{"blue band start", 0.01, 0, 0, 50},
		{"cyan transition start", 0.25, 0, 0, 205},
		{"yellow transition start", 0.5, 0, 180, 155},
		{"red transition start", 0.75, 255, 255, 0},
		{"full intensity", 1.0, 255, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := gradientColor(tt.s)
			assert.Equal(t, tt.r, r, "red channel")
			assert.Equal(t, tt.g, g, "green channel")
			assert.Equal(t, tt.b, b, "blue channel")
		})
	}
}

func TestGradientColorClamps(t *testing.T) {
	r, g, b := gradientColor(-0.5)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b}, "Negative intensity should clamp to zero")

	r, g, b = gradientColor(2.0)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b}, "Excess intensity should clamp to full red")
}

func TestEncodePNG(t *testing.T) {
	img := RenderHeatmap([][]float64{{0.2, 0.8}})

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, img))

	signature := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	assert.True(t, bytes.HasPrefix(buf.Bytes(), signature), "Output should carry the PNG signature")
}

func TestWritePNGFile(t *testing.T) {
	img := RenderHeatmap([][]float64{{0.5}})
	path := t.TempDir() + "/heatmap.png"

	require.NoError(t, WritePNGFile(path, img))
	assert.FileExists(t, path)
}
