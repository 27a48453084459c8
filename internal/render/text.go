package render

import (
	"image/color"
	"strings"

	"github.com/gogpu/gg"
)

// TextRun is a maximal substring drawn with a single font.
type TextRun struct {
	Text  string
	ASCII bool
}

// SplitTextRuns partitions a string into maximal runs of ASCII-range and
// non-ASCII characters. Concatenating the runs reproduces the input.
func SplitTextRuns(s string) []TextRun {
	if s == "" {
		return nil
	}

	var runs []TextRun
	var current strings.Builder
	currentASCII := false
	started := false

	for _, r := range s {
		ascii := r <= 0x7F
		if started && ascii == currentASCII {
			current.WriteRune(r)
			continue
		}
		if started {
			runs = append(runs, TextRun{Text: current.String(), ASCII: currentASCII})
			current.Reset()
		}
		current.WriteRune(r)
		currentASCII = ascii
		started = true
	}
	runs = append(runs, TextRun{Text: current.String(), ASCII: currentASCII})
	return runs
}

// DrawMixedText draws s with its top-left corner at (x, y), switching fonts
// per run. ASCII runs are shifted down by the set's baseline offset.
func DrawMixedText(dc *gg.Context, x, y float64, s string, fonts FontSet, fill color.Color) {
	dc.SetColor(fill)
	for _, run := range SplitTextRuns(s) {
		face := fonts.runFace(run)
		baseline := y + face.Metrics().Ascent
		if run.ASCII {
			baseline += fonts.NumBaselineOffset
		}
		dc.SetFont(face)
		dc.DrawString(run.Text, x, baseline)
		x += face.Advance(run.Text)
	}
}

// DrawCenteredMixedText centers s inside the rectangle.
func DrawCenteredMixedText(dc *gg.Context, x, y, w, h float64, s string, fonts FontSet, fill color.Color) {
	textW := fonts.MixedTextWidth(s)
	textH := fonts.MixedFontHeight()
	DrawMixedText(dc, x+(w-textW)/2, y+(h-textH)/2, s, fonts, fill)
}

// TruncateMixedText shortens s with a trailing ellipsis until it fits
// maxWidth. Degenerate widths collapse to the ellipsis alone.
func TruncateMixedText(s string, fonts FontSet, maxWidth float64) string {
	if fonts.MixedTextWidth(s) <= maxWidth {
		return s
	}
	const ellipsis = "…"
	runes := []rune(s)
	for end := len(runes); end > 0; end-- {
		candidate := strings.TrimRight(string(runes[:end]), " ") + ellipsis
		if fonts.MixedTextWidth(candidate) <= maxWidth {
			return candidate
		}
	}
	return ellipsis
}
