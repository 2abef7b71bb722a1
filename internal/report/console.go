// Package report renders analysis results for the outward surfaces: a boxed
// terminal report and a JSON document shared by the HTTP API, the WebSocket
// stream, the MCP tool and the CLI. Rendering only ever reads the analysis;
// scores are never recomputed here.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrWong99/rapport/pkg/depth"
)

// valueWidth is the printable width of a row's value cell.
const valueWidth = 28

// Console writes the boxed terminal report for one analysis to w.
func Console(w io.Writer, a *depth.Analysis) {
	fmt.Fprintln(w, "╔════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║          Connection depth — analysis           ║")
	fmt.Fprintln(w, "╠════════════════════════════════════════════════╣")
	row(w, "Overall", scoreCell(a.Overall))
	fmt.Fprintln(w, "╠════════════════════════════════════════════════╣")
	for _, dim := range depth.Dimensions {
		row(w, dim.Title(), scoreCell(a.Scores[dim]))
	}
	fmt.Fprintln(w, "╠════════════════════════════════════════════════╣")
	row(w, "Turns", fmt.Sprintf("%d  (human %d, ai %d)", a.Stats.Turns, a.Stats.HumanTurns, a.Stats.AITurns))
	row(w, "Words", fmt.Sprintf("%d human, %d ai", a.Stats.HumanWords, a.Stats.AIWords))
	fmt.Fprintln(w, "╚════════════════════════════════════════════════╝")

	moments(w, "Highlights", a.Insights.Highlights)
	moments(w, "AI experience moments", a.Insights.AIExperienceMoments)
	moments(w, "Openings for deeper connection", a.Insights.MissedOpportunities)
}

func scoreCell(s depth.Score) string {
	return fmt.Sprintf("%s %3d/100 %-6s %s", labelGlyph(s.Label), s.Value, s.Label, bar(s.Value))
}

// labelGlyph maps a label to its traffic-light glyph.
func labelGlyph(l depth.Label) string {
	switch l {
	case depth.LabelGreen:
		return "🟢"
	case depth.LabelYellow:
		return "🟡"
	default:
		return "🔴"
	}
}

// bar renders a ten-cell score bar, one cell per ten points.
func bar(v int) string {
	filled := (v + 5) / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// row prints one box row, padding the value by display width rather than
// bytes so the borders stay aligned around glyph and bar runes.
func row(w io.Writer, name, value string) {
	if cellWidth(value) > valueWidth {
		runes := []rune(value)
		for len(runes) > 0 && cellWidth(string(runes)) >= valueWidth {
			runes = runes[:len(runes)-1]
		}
		value = string(runes) + "…"
	}
	fmt.Fprintf(w, "║  %-14s : %s%s ║\n", name, value, strings.Repeat(" ", valueWidth-cellWidth(value)))
}

// cellWidth is a value's printed width in terminal columns. The label glyphs
// render as two columns; every other rune the reports emit renders as one.
func cellWidth(s string) int {
	width := 0
	for _, r := range s {
		width++
		if r >= 0x1F300 {
			width++
		}
	}
	return width
}

func moments(w io.Writer, title string, ms []depth.Moment) {
	if len(ms) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, m := range ms {
		// Turn indices are zero-based internally, one-based on screen.
		fmt.Fprintf(w, "  • turn %d: %s — %q\n", m.TurnIndex+1, m.Note, m.Excerpt)
	}
}
