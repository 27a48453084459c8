package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func solidImage(c color.RGBA, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestEncodeImage(t *testing.T) {
	img := solidImage(palette.background, 8, 8)

	jpegBytes, err := EncodeImage(img, MimeJPEG)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(jpegBytes)); err != nil {
		t.Errorf("jpeg output did not decode: %v", err)
	}

	pngBytes, err := EncodeImage(img, MimePNG)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("png output did not decode: %v", err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 8 {
		t.Errorf("decoded bounds = %v", decoded.Bounds())
	}
}

func TestDefaultScheduleFilename(t *testing.T) {
	if got := DefaultScheduleFilename(2026, 9, MimeJPEG); got != "schedule-2026-09.jpg" {
		t.Errorf("jpeg filename = %q", got)
	}
	if got := DefaultScheduleFilename(2026, 12, MimePNG); got != "schedule-2026-12.png" {
		t.Errorf("png filename = %q", got)
	}
}

func TestApplyWarmFinishTintsBrightNeutrals(t *testing.T) {
	// The page background is bright and nearly gray, so the warm tint
	// applies: red rises relative to blue.
	img := solidImage(palette.background, 4, 4)
	out := applyWarmFinish(img)

	got := out.RGBAAt(1, 1)
	if got == palette.background {
		t.Fatal("background pixel unchanged")
	}
	if int(got.R)-int(got.B) <= int(palette.background.R)-int(palette.background.B) {
		t.Errorf("warm tint did not widen red over blue: got %v from %v", got, palette.background)
	}
}

func TestApplyWarmFinishSkipsSaturatedColors(t *testing.T) {
	// A saturated card color is outside the tint gate; only the mild
	// saturation/contrast lift applies, which never moves a channel by
	// more than a few steps.
	card := classroomCardStyles["tokyo"].fill
	img := solidImage(card, 4, 4)
	out := applyWarmFinish(img)

	got := out.RGBAAt(2, 2)
	for i, pair := range [][2]uint8{{got.R, card.R}, {got.G, card.G}, {got.B, card.B}} {
		diff := int(pair[0]) - int(pair[1])
		if diff < 0 {
			diff = -diff
		}
		if diff > 24 {
			t.Errorf("channel %d moved by %d, want a mild shift", i, diff)
		}
	}
}

func TestApplyWarmFinishGatesOnEnhancedPixel(t *testing.T) {
	// (230,195,180) sits just inside the gate before enhancement
	// (s ≈ 0.217) but the saturation/contrast lift pushes it out
	// (s ≈ 0.240), so no warm blend applies.
	in := rgb(230, 195, 180)
	img := solidImage(in, 2, 2)
	out := applyWarmFinish(img)

	got := out.RGBAAt(0, 0)
	want := rgb(238, 198, 181)
	if got != want {
		t.Errorf("got %v, want the enhanced-only pixel %v", got, want)
	}
}

func TestApplyWarmFinishPreservesBounds(t *testing.T) {
	img := solidImage(palette.paper, 5, 3)
	out := applyWarmFinish(img)
	if out.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", out.Bounds(), img.Bounds())
	}
}
