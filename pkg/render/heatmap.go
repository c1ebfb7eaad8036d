package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
)

// RenderHeatmap converts a normalized spectrogram into an RGBA image.
// Width is the time-step count, height the bin count. The frequency axis is
// flipped during pixel placement: pixel row y reads the value at bin index
// height-1-y, so bin 0 (lowest frequency) renders at the bottom. Pure
// function: identical matrices yield byte-identical pixel buffers.
func RenderHeatmap(normalized [][]float64) *image.RGBA {
	width := len(normalized)
	height := 0
	if width > 0 {
		height = len(normalized[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for x := 0; x < width; x++ {
		column := normalized[x]
		for y := 0; y < height; y++ {
			r, g, b := gradientColor(column[height-1-y])
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	return img
}

// gradientColor resolves an intensity in [0, 1] through five piecewise-linear
// bands: near-black, blue, blue-to-cyan, cyan-to-yellow, yellow-to-red.
// Values just below 0.01 stay visually indistinguishable from zero; the tiny
// blue ramp there documents the intentional discontinuity at the band edge.
func gradientColor(s float64) (r, g, b uint8) {
	if s < 0 {
		s = 0
	} else if s > 1 {
		s = 1
	}

	switch {
	case s < 0.01:
		return 0, 0, uint8(math.Floor(s * 2000))

	case s < 0.25:
		t := (s - 0.01) / 0.24
		return 0, 0, uint8(math.Floor(50 + t*155))

	case s < 0.5:
		t := (s - 0.25) / 0.25
		return 0, uint8(math.Floor(t * 180)), uint8(math.Floor(205 - t*50))

	case s < 0.75:
		t := (s - 0.5) / 0.25
		return uint8(math.Floor(t * 255)), uint8(math.Floor(180 + t*75)), uint8(math.Floor(155 - t*155))

	default:
		t := (s - 0.75) / 0.25
		return 255, uint8(math.Floor(255 - t*255)), 0
	}
}

// EncodePNG writes an image to a writer as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WritePNGFile renders an image to a PNG file
func WritePNGFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
