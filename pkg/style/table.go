package style

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Ritenoob/miniature-enigma/pkg/tracker"
)

func NewDefaultTableStyle() *table.Style {
	style := table.Style{
		Name:    "StyleRounded",
		Box:     table.StyleBoxRounded,
		Format:  table.FormatOptionsDefault,
		HTML:    table.DefaultHTMLOptions,
		Options: table.OptionsDefault,
		Title:   table.TitleOptionsDefault,
		Color:   table.ColorOptionsYellowWhiteOnBlack,
	}
	style.Color.Row = text.Colors{text.FgHiYellow, text.BgHiBlack}
	style.Color.RowAlternate = text.Colors{text.FgYellow, text.BgBlack}
	return &style
}

// RenderSnapshots writes the ready snapshots as a table.
// @param style: pretty print table style, nil gives the plain go-pretty style
// @param withColor: whether to print the title and the histogram with color
func RenderSnapshots(f io.Writer, title string, snapshots []tracker.Snapshot, style *table.Style, withColor bool) {
	var write func(io.Writer, string, ...interface{})
	if withColor {
		write = color.New(color.FgHiYellow).FprintfFunc()
	} else {
		write = func(a io.Writer, format string, args ...interface{}) {
			fmt.Fprintf(a, format, args...)
		}
	}

	write(f, "---- %s ---\n", title)

	t := table.NewWriter()
	t.SetOutputMirror(f)
	if style != nil {
		t.SetStyle(*style)
	}

	t.AppendHeader(table.Row{"#", "time", "close", "macd", "signal", "histogram", "cross", "rsi", "zone"})
	for _, s := range snapshots {
		if !s.MACDReady && !s.RSIReady {
			continue
		}

		row := table.Row{s.Index, formatTime(s), fmt.Sprintf("%.4f", s.Close)}
		if s.MACDReady {
			histogram := HistogramSignString(s.MACD.Histogram)
			if withColor {
				histogram = HistogramColors(s.MACD.Histogram).Sprint(histogram)
			}

			row = append(row,
				fmt.Sprintf("%.6f", s.MACD.MACD),
				fmt.Sprintf("%.6f", s.MACD.Signal),
				histogram,
				CrossEmoji(s.Cross)+s.Cross.String(),
			)
		} else {
			row = append(row, "-", "-", "-", "-")
		}

		if s.RSIReady {
			row = append(row, fmt.Sprintf("%.2f", s.RSI), s.Zone.String())
		} else {
			row = append(row, "-", s.Zone.String())
		}

		t.AppendRow(row)
	}

	t.Render()
}

func formatTime(s tracker.Snapshot) string {
	if s.Time.IsZero() {
		return "-"
	}
	return s.Time.Format("2006-01-02 15:04:05")
}
