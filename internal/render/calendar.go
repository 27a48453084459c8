package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"atelier-schedule-bot/internal/models"
	"atelier-schedule-bot/internal/models/config"
	"atelier-schedule-bot/internal/schedule"
)

// Renderer draws monthly schedule calendar images. It is a pure function
// of its inputs apart from the shared read-only font library.
type Renderer struct {
	cfg   config.RenderConfig
	fonts *FontLibrary
	title string
}

func NewRenderer(cfg config.RenderConfig, fonts *FontLibrary, title string) *Renderer {
	return &Renderer{cfg: cfg, fonts: fonts, title: title}
}

// cellFonts bundles the face sets used inside one day cell.
type cellFonts struct {
	classroom     FontSet
	venueBadge    FontSet
	time          FontSet
	beginnerLabel FontSet
	hidden        FontSet
	nightBadge    FontSet
}

// RenderMonth renders the month's calendar. The input entry slice is never
// mutated; entries outside the visible grid are ignored.
func (r *Renderer) RenderMonth(year, month int, entries []models.ScheduleEntry) image.Image {
	width, height := r.cfg.Width, r.cfg.Height
	dc := gg.NewContext(width, height)
	dc.SetColor(palette.background)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()

	fw := float64(width)
	fh := float64(height)

	titleFonts := r.fonts.FontSet(max(72, fw/17), true)
	monthFonts := r.fonts.FontSet(max(64, fw/20), true)
	weekdayFonts := r.fonts.FontSet(max(28, fw/50), true)
	dayFonts := r.fonts.FontSet(max(38, fw/32), true)
	fonts := cellFonts{
		classroom:     r.fonts.FontSet(max(33, fw/39), true),
		venueBadge:    r.fonts.FontSet(max(22, fw/62), true),
		time:          r.fonts.FontSet(max(25, fw/58), true),
		beginnerLabel: r.fonts.FontSet(max(22, fw/64), true),
		hidden:        r.fonts.FontSet(max(17, fw/82), true),
		nightBadge:    r.fonts.FontSet(max(18, fw/74), true),
	}

	margin := max(24, fw/56)

	// Header: title left, "YYYY年 M月" right, bottom-aligned on one row.
	monthText := fmt.Sprintf("%d年 %d月", year, month)
	titleW := titleFonts.MixedTextWidth(r.title)
	titleH := titleFonts.MixedFontHeight()
	monthW := monthFonts.MixedTextWidth(monthText)
	monthH := monthFonts.MixedFontHeight()
	headerBottom := margin - 2 + max(titleH, monthH)
	titleX := margin
	monthX := fw - margin - monthW
	if minMonthX := titleX + titleW + max(18, fw/72); monthX < minMonthX {
		monthX = minMonthX
	}
	DrawMixedText(dc, titleX, headerBottom-titleH, r.title, titleFonts, palette.ink)
	DrawMixedText(dc, monthX, headerBottom-monthH, monthText, monthFonts, palette.ink)

	weekTop := headerBottom + max(18, fh/84)
	weekHeight := max(46, fh/52)
	gridBottom := fh - margin

	matrix := schedule.MonthMatrix(year, month, nil)
	rowCount := len(matrix)
	colGap := max(8, fw/192)
	rowGap := max(6, fh/320)
	gridTop := weekTop + weekHeight + rowGap
	cornerRadius := max(14, fw/110)

	// 7 columns; the integer remainder of the usable width goes to the
	// leftmost columns so the grid spans the full row.
	gridWidth := int(fw - margin*2)
	usable := gridWidth - int(colGap)*6
	if usable < 7 {
		usable = 7
	}
	base := usable / 7
	remainder := usable % 7
	cellWidths := make([]float64, 7)
	colLefts := make([]float64, 7)
	cursorX := margin
	for col := 0; col < 7; col++ {
		w := base
		if col < remainder {
			w++
		}
		cellWidths[col] = float64(w)
		colLefts[col] = cursorX
		cursorX += float64(w) + colGap
	}

	gridHeight := gridBottom - gridTop
	cellHeight := (gridHeight - rowGap*float64(rowCount-1)) / float64(max(1, rowCount))

	for col, label := range weekdayLabels {
		x := colLefts[col]
		fill := palette.paper
		textColor := palette.subtle
		switch col {
		case 5:
			fill = palette.satBG
			textColor = palette.accent2
		case 6:
			fill = palette.sunBG
			textColor = palette.accent
		}
		dc.SetColor(fill)
		dc.DrawRoundedRectangle(x, weekTop, cellWidths[col], weekHeight, cornerRadius)
		dc.Fill()
		DrawCenteredMixedText(dc, x, weekTop, cellWidths[col], weekHeight, label, weekdayFonts, textColor)
	}

	entriesByDay := make(map[string][]models.ScheduleEntry)
	for _, entry := range entries {
		key := entry.Day.Format("2006-01-02")
		entriesByDay[key] = append(entriesByDay[key], entry)
	}

	for rowIndex, week := range matrix {
		for colIndex, cellDate := range week {
			x := colLefts[colIndex]
			y := gridTop + float64(rowIndex)*(cellHeight+rowGap)
			adjacent := int(cellDate.Month()) != month

			cellFill := palette.paper
			switch colIndex {
			case 5:
				cellFill = palette.satBG
			case 6:
				cellFill = palette.sunBG
			}
			if adjacent {
				cellFill = palette.emptyCell
			}
			dc.SetColor(cellFill)
			dc.DrawRoundedRectangle(x, y, cellWidths[colIndex], cellHeight, cornerRadius)
			dc.Fill()

			dayColor := palette.ink
			switch colIndex {
			case 5:
				dayColor = palette.accent2
			case 6:
				dayColor = palette.accent
			}
			if adjacent {
				dayColor = palette.muted
			}
			DrawMixedText(dc, x+14, y+6, fmt.Sprintf("%d", cellDate.Day()), dayFonts, dayColor)

			dayEntries := entriesByDay[cellDate.Format("2006-01-02")]
			cards := schedule.BuildDayCards(dayEntries)
			drawDayCards(dc, cards, cellRect{
				x: x, y: y, w: cellWidths[colIndex], h: cellHeight,
			}, dayFonts.MixedFontHeight(), fonts)
		}
	}

	return applyWarmFinish(dc.Image())
}
