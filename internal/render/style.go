package render

import (
	"image/color"
	"strings"
)

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Paper-and-ink palette shared with the reservation pages.
var palette = struct {
	background color.RGBA
	paper      color.RGBA
	emptyCell  color.RGBA
	ink        color.RGBA
	subtle     color.RGBA
	muted      color.RGBA
	accent     color.RGBA
	accent2    color.RGBA
	sunBG      color.RGBA
	satBG      color.RGBA
}{
	background: rgb(221, 214, 206),
	paper:      rgb(255, 255, 255),
	emptyCell:  rgb(246, 242, 238),
	ink:        rgb(78, 52, 46),
	subtle:     rgb(120, 90, 78),
	muted:      rgb(161, 136, 127),
	accent:     rgb(191, 102, 43),
	accent2:    rgb(74, 128, 49),
	sunBG:      rgb(250, 236, 220),
	satBG:      rgb(231, 243, 229),
}

var weekdayLabels = [7]string{"月", "火", "水", "木", "金", "土", "日"}

// cardStyle is a fill/text color pair for cards and badges.
type cardStyle struct {
	fill color.RGBA
	text color.RGBA
}

// Classroom card colors follow the reservation app palette.
var classroomCardStyles = map[string]cardStyle{
	"tokyo":   {fill: rgb(233, 131, 136), text: rgb(255, 255, 255)},
	"tsukuba": {fill: rgb(106, 189, 166), text: rgb(255, 255, 255)},
	"numazu":  {fill: rgb(106, 172, 217), text: rgb(255, 255, 255)},
	"default": {fill: rgb(162, 173, 186), text: rgb(255, 255, 255)},
}

var venueBadgeStyles = map[string]cardStyle{
	"浅草橋":  {fill: rgb(255, 255, 255), text: rgb(244, 139, 75)},
	"東池袋":  {fill: rgb(255, 255, 255), text: rgb(196, 120, 209)},
	"複数会場": {fill: rgb(255, 255, 255), text: rgb(145, 153, 169)},
}

var venueBadgeDefault = cardStyle{fill: rgb(255, 255, 255), text: rgb(145, 153, 169)}

var nightBadgeStyle = cardStyle{fill: rgb(57, 84, 152), text: rgb(255, 255, 255)}

func classroomCardStyle(classroom string) cardStyle {
	value := strings.TrimSpace(classroom)
	switch {
	case strings.Contains(value, "東京"):
		return classroomCardStyles["tokyo"]
	case strings.Contains(value, "つくば"):
		return classroomCardStyles["tsukuba"]
	case strings.Contains(value, "沼津"):
		return classroomCardStyles["numazu"]
	default:
		return classroomCardStyles["default"]
	}
}

func venueBadgeStyle(venue string) cardStyle {
	if style, ok := venueBadgeStyles[strings.TrimSpace(venue)]; ok {
		return style
	}
	return venueBadgeDefault
}
