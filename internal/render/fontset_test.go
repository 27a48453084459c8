package render

import "testing"

func TestFitToWidthNeverUpscales(t *testing.T) {
	lib := testFontLibrary(t)
	set := lib.FontSet(40, true)
	s := "13:00~16:00 東京"
	w := set.MixedTextWidth(s)

	if got := set.FitToWidth(s, w*2); got.Size() != set.Size() {
		t.Errorf("generous width changed size: %.2f -> %.2f", set.Size(), got.Size())
	}
	if got := set.Scale(1.25); got.Size() != set.Size() {
		t.Errorf("Scale above 1.0 changed size: %.2f -> %.2f", set.Size(), got.Size())
	}
}

func TestFitToWidthShrinksMonotonically(t *testing.T) {
	lib := testFontLibrary(t)
	set := lib.FontSet(40, true)
	s := "13:00~16:00 東京"
	fullW := set.MixedTextWidth(s)
	floor := set.Size() * fitMinScale

	prev := set.Size()
	for _, frac := range []float64{0.95, 0.8, 0.65, 0.5, 0.35, 0.2, 0.05} {
		fitted := set.FitToWidth(s, fullW*frac)
		size := fitted.Size()
		if size > prev+1e-9 {
			t.Errorf("width %.2fx: size %.2f grew past previous %.2f", frac, size, prev)
		}
		if size > set.Size() {
			t.Errorf("width %.2fx: size %.2f exceeds the base %.2f", frac, size, set.Size())
		}
		if size < floor-1e-9 {
			t.Errorf("width %.2fx: size %.2f dropped below the floor %.2f", frac, size, floor)
		}
		prev = size
	}
}

func TestFitToWidthReturnsFloorForImpossibleWidth(t *testing.T) {
	lib := testFontLibrary(t)
	set := lib.FontSet(40, true)
	s := "13:00~16:00 東京"
	floor := set.Size() * fitMinScale

	fitted := set.FitToWidth(s, 1)
	if fitted.Size() >= set.Size() {
		t.Errorf("size %.2f did not shrink from %.2f", fitted.Size(), set.Size())
	}
	if fitted.Size() < floor-1e-9 {
		t.Errorf("size %.2f dropped below the floor %.2f", fitted.Size(), floor)
	}
}
