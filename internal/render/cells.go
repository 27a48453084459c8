package render

import (
	"fmt"

	"github.com/gogpu/gg"

	"atelier-schedule-bot/internal/models"
	"atelier-schedule-bot/internal/schedule"
)

type cellRect struct {
	x, y, w, h float64
}

// drawDayCards stacks a day's cards inside one grid cell. Cards that fit
// are bottom-aligned; at least one card is always drawn, and the cards that
// don't fit collapse into a trailing "+N件" marker.
func drawDayCards(dc *gg.Context, cards []models.DayCard, rect cellRect, dayNumberHeight float64, fonts cellFonts) {
	if len(cards) == 0 {
		return
	}

	const (
		cellMarginX      = 8.0
		cellMarginBottom = 6.0
		titleToTimeGap   = 8.0
		beginnerGap      = 6.0
		cardGap          = 6.0
	)

	startX := rect.x + cellMarginX
	startYMin := rect.y + max(50, dayNumberHeight+16)
	maxWidth := rect.w - cellMarginX*2

	classroomH := fonts.classroom.MixedFontHeight()
	lineH := fonts.time.MixedFontHeight() + 3
	beginnerHeadingH := fonts.beginnerLabel.MixedFontHeight()
	baseCardH := max(90, classroomH+titleToTimeGap+lineH*2+20)
	cardH := baseCardH + beginnerGap + beginnerHeadingH + lineH
	slotH := cardH + cardGap

	dayAvailableH := max(0, rect.y+rect.h-startYMin-cellMarginBottom)
	visibleCount, hiddenCount := visibleCardSplit(len(cards), dayAvailableH, slotH, cardGap)
	visible := cards[:visibleCount]

	usedH := float64(len(visible))*cardH + float64(len(visible)-1)*cardGap
	y := max(startYMin, rect.y+rect.h-cellMarginBottom-usedH)

	for _, card := range visible {
		lines, beginnerTime := schedule.BuildFixedTimeRows(card)
		style := classroomCardStyle(card.Classroom)

		dc.SetColor(style.fill)
		dc.DrawRoundedRectangle(startX, y, maxWidth, cardH, 10)
		dc.Fill()

		// Wider left inset for the classroom title, tighter padding for
		// the time lines below it.
		innerX := startX + 6
		innerRight := startX + maxWidth - 6
		classX := innerX + 2
		classY := y + 4

		classroomText := schedule.ShortClassroomName(card.Classroom)
		if classroomText == "" {
			classroomText = models.ClassroomUndecided
		}

		type badge struct {
			text  string
			style cardStyle
			fonts FontSet
			w, h  float64
		}
		var venueBadge *badge
		classRight := innerRight
		if card.Venue != "" {
			vStyle := venueBadgeStyle(card.Venue)
			maxBadgeTextW := max(30, maxWidth/2)
			fitBadgeFonts := fonts.venueBadge.FitToWidth(card.Venue, maxBadgeTextW)
			badgeH := fitBadgeFonts.MixedFontHeight() + 1 + 4
			badgeW := min(fitBadgeFonts.MixedTextWidth(card.Venue)+12, maxBadgeTextW+12)
			classRight = max(classX+12, innerRight-badgeW-8)
			venueBadge = &badge{text: card.Venue, style: vStyle, fonts: fitBadgeFonts, w: badgeW, h: badgeH}
		}

		classAreaW := max(10, classRight-classX)
		fitClassroomFonts := fonts.classroom.FitToWidth(classroomText, classAreaW)
		DrawMixedText(dc, classX, classY, classroomText, fitClassroomFonts, style.text)
		classBottom := classY + fitClassroomFonts.MixedFontHeight()

		if venueBadge != nil {
			bx := innerRight - venueBadge.w
			by := classBottom - venueBadge.h
			dc.SetColor(venueBadge.style.fill)
			dc.DrawRoundedRectangle(bx, by, venueBadge.w, venueBadge.h, 8)
			dc.Fill()
			DrawMixedText(dc, bx+6, by, venueBadge.text, venueBadge.fonts, venueBadge.style.text)
		}

		nightIndexes := schedule.ResolveNightTimeLineIndexes(card, lines)
		var cardTimeFonts *FontSet
		lineY := classBottom + titleToTimeGap
		for index, value := range lines {
			lineX := innerX
			lineAreaW := max(10, innerRight-lineX)
			if nightIndexes[index] {
				badgeText := "夜"
				fitNightFonts := fonts.nightBadge.FitToWidth(badgeText, max(16, lineAreaW/3))
				nightH := fitNightFonts.MixedFontHeight() + 1 + 4
				nightW := fitNightFonts.MixedTextWidth(badgeText) + 12
				nightY := lineY + max(0, (lineH-nightH)/2)
				dc.SetColor(nightBadgeStyle.fill)
				dc.DrawRoundedRectangle(lineX, nightY, nightW, nightH, 7)
				dc.Fill()
				DrawMixedText(dc, lineX+6, nightY, badgeText, fitNightFonts, nightBadgeStyle.text)
				lineX += nightW + 6
				lineAreaW = max(10, innerRight-lineX)
			}

			if value != "" {
				fitLineFonts := fonts.time.FitToWidth(value, lineAreaW)
				smaller := SmallerFontSet(cardTimeFonts, fitLineFonts)
				cardTimeFonts = &smaller
				DrawMixedText(dc, lineX, lineY, value, fitLineFonts, style.text)
			}
			lineY += lineH
		}

		lineY += beginnerGap
		if beginnerTime != "" {
			beginnerTitle := "はじめての方"
			fitBeginnerTitle := fonts.beginnerLabel.FitToWidth(beginnerTitle, max(10, innerRight-innerX))
			DrawMixedText(dc, classX, lineY, beginnerTitle, fitBeginnerTitle, style.text)
			lineY += lineH

			beginnerBase := fonts.time
			if cardTimeFonts != nil {
				beginnerBase = *cardTimeFonts
			}
			fitBeginnerTime := beginnerBase.FitToWidth(beginnerTime, max(10, innerRight-innerX))
			DrawMixedText(dc, innerX, lineY, beginnerTime, fitBeginnerTime, style.text)
		}

		y += slotH
	}

	if hiddenCount > 0 {
		DrawMixedText(dc, startX+4, y-2, fmt.Sprintf("+%d件", hiddenCount), fonts.hidden, palette.muted)
	}
}

// visibleCardSplit decides how many cards fit the available height and how
// many fold into the trailing overflow marker. At least one card is always
// shown when any exist.
func visibleCardSplit(total int, availableH, slotH, cardGap float64) (visible, hidden int) {
	maxCards := int((availableH + cardGap) / max(1, slotH))
	if maxCards < 1 {
		maxCards = 1
	}
	visible = total
	if visible > maxCards {
		visible = maxCards
	}
	return visible, total - visible
}
