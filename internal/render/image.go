package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
)

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
)

// EncodeImage serializes the rendered calendar for posting.
func EncodeImage(img image.Image, mimeType string) ([]byte, error) {
	var buf bytes.Buffer
	switch mimeType {
	case MimePNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// DefaultScheduleFilename names the posted file, e.g. "schedule-2026-09.jpg".
func DefaultScheduleFilename(year, month int, mimeType string) string {
	ext := ".jpg"
	if mimeType == MimePNG {
		ext = ".png"
	}
	return fmt.Sprintf("schedule-%d-%02d%s", year, month, ext)
}

// applyWarmFinish applies the "clear-warmbg" look: a slight saturation and
// contrast lift plus a warm tint blended into low-saturation bright areas
// (background and empty cells) while card colors stay untouched.
func applyWarmFinish(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	const (
		saturationBoost = 1.08
		contrastBoost   = 1.06
		blend           = 0.22
	)
	warm := [3]float64{245, 226, 205}

	for i := 0; i < len(out.Pix); i += 4 {
		r := float64(out.Pix[i])
		g := float64(out.Pix[i+1])
		b := float64(out.Pix[i+2])

		// Saturation: push channels away from their luma.
		luma := 0.299*r + 0.587*g + 0.114*b
		r = clampFloat(luma + (r-luma)*saturationBoost)
		g = clampFloat(luma + (g-luma)*saturationBoost)
		b = clampFloat(luma + (b-luma)*saturationBoost)

		// Contrast around mid-gray.
		r = clampFloat(128 + (r-128)*contrastBoost)
		g = clampFloat(128 + (g-128)*contrastBoost)
		b = clampFloat(128 + (b-128)*contrastBoost)

		// The gate reads the enhanced pixel, not the source one.
		s, v := saturationValue(r, g, b)
		if s < 0.22 && v > 0.70 {
			r = r*(1-blend) + warm[0]*blend
			g = g*(1-blend) + warm[1]*blend
			b = b*(1-blend) + warm[2]*blend
		}

		out.Pix[i] = clampByte(r)
		out.Pix[i+1] = clampByte(g)
		out.Pix[i+2] = clampByte(b)
	}
	return out
}

// saturationValue returns the HSV saturation and value of an 8-bit RGB
// triple, both in [0, 1].
func saturationValue(r, g, b float64) (float64, float64) {
	maxC := max(r, max(g, b))
	minC := min(r, min(g, b))
	v := maxC / 255
	if maxC == 0 {
		return 0, v
	}
	return (maxC - minC) / maxC, v
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
