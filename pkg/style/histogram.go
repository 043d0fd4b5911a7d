package style

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Ritenoob/miniature-enigma/pkg/indicator"
)

var CrossUpEmoji = "📈"
var CrossDownEmoji = "📉"

func HistogramColors(histogram float64) text.Colors {
	if histogram > 0 {
		return text.Colors{text.FgGreen}
	}
	return text.Colors{text.FgRed}
}

func HistogramSignString(histogram float64) string {
	s := strconv.FormatFloat(histogram, 'f', 6, 64)
	if histogram > 0 {
		return "+" + s
	}
	return s
}

func CrossEmoji(c indicator.CrossType) string {
	switch c {
	case indicator.CrossUp:
		return CrossUpEmoji
	case indicator.CrossDown:
		return CrossDownEmoji
	}
	return ""
}
