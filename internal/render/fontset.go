package render

import (
	"math"

	"github.com/gogpu/gg/text"
)

// The ASCII/digit font runs larger than the JP font at the same nominal
// size and gets synthetic vertical metrics so stacked mixed lines keep an
// even rhythm.
const (
	numSizeAdjust      = 1.20
	numAscentOverride  = 0.85
	numDescentOverride = 0.15

	fitStartScale = 0.96
	fitScaleStep  = 0.04
	fitMinScale   = 0.62
)

// FontSet pairs a JP face with an ASCII/digit face at one nominal size.
// NumBaselineOffset shifts ASCII runs down so their optical height matches
// the JP glyphs. Immutable once built.
type FontSet struct {
	JP  text.Face
	Num text.Face

	jpSource  *text.FontSource
	numSource *text.FontSource
	size      float64

	NumBaselineOffset float64
	NumLineHeight     float64
}

func newFontSet(jpSource, numSource *text.FontSource, size float64) FontSet {
	numSize := size * numSizeAdjust
	jp := jpSource.Face(size)
	num := numSource.Face(numSize)

	jpMetrics := jp.Metrics()
	numMetrics := num.Metrics()

	targetAscent := numSize * numAscentOverride
	targetDescent := numSize * numDescentOverride
	baseOffset := targetAscent - numMetrics.Ascent
	opticalOffset := jpMetrics.Ascent - numMetrics.Ascent

	return FontSet{
		JP:                jp,
		Num:               num,
		jpSource:          jpSource,
		numSource:         numSource,
		size:              size,
		NumBaselineOffset: math.Max(0, math.Max(baseOffset, opticalOffset)),
		NumLineHeight:     math.Max(1, targetAscent+targetDescent),
	}
}

// Size returns the nominal (JP) size in points.
func (f FontSet) Size() float64 {
	return f.size
}

// Scale derives a uniformly smaller set. Scales at or above 1.0 return the
// set unchanged; text fitting never enlarges.
func (f FontSet) Scale(scale float64) FontSet {
	if scale >= 0.999 {
		return f
	}
	return newFontSet(f.jpSource, f.numSource, math.Max(1, f.size*scale))
}

// FitToWidth shrinks the set in fixed decrements until the text fits
// maxWidth or the floor scale is reached. The floor result is returned
// even when the text still overflows; overflow is clipped, not an error.
func (f FontSet) FitToWidth(s string, maxWidth float64) FontSet {
	if f.MixedTextWidth(s) <= maxWidth {
		return f
	}
	fitted := f
	for scale := fitStartScale; scale >= fitMinScale; scale -= fitScaleStep {
		candidate := f.Scale(scale)
		fitted = candidate
		if candidate.MixedTextWidth(s) <= maxWidth {
			return candidate
		}
	}
	return fitted
}

// MixedTextWidth sums run widths, measuring each run with its own font.
func (f FontSet) MixedTextWidth(s string) float64 {
	var width float64
	for _, run := range SplitTextRuns(s) {
		width += f.runFace(run).Advance(run.Text)
	}
	return width
}

// MixedFontHeight is the line height of a mixed line: the taller of the JP
// line height and the num font's synthetic line height.
func (f FontSet) MixedFontHeight() float64 {
	return math.Max(f.JP.Metrics().LineHeight(), f.NumLineHeight)
}

func (f FontSet) runFace(run TextRun) text.Face {
	if run.ASCII {
		return f.Num
	}
	return f.JP
}

// SmallerFontSet returns whichever set renders at the smaller size; used to
// keep a card's secondary lines from outsizing its shrunken main lines.
func SmallerFontSet(current *FontSet, candidate FontSet) FontSet {
	if current == nil || candidate.size < current.size {
		return candidate
	}
	return *current
}
