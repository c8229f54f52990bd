package printing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const ellipsis = "..."

var ptBRUpper = cases.Upper(language.BrazilianPortuguese)

// upper uppercases with Portuguese casing rules, "acessórios" -> "ACESSÓRIOS"
func upper(s string) string {
	return ptBRUpper.String(s)
}

// wrapText breaks s into lines no wider than width using measure. A word
// wider than width is split between runes.
func wrapText(s string, width float64, measure func(string) float64) []string {
	var lines []string
	line := ""
	for _, w := range strings.Fields(s) {
		if line != "" {
			if candidate := line + " " + w; measure(candidate) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
		}
		pieces := splitWord(w, width, measure)
		lines = append(lines, pieces[:len(pieces)-1]...)
		line = pieces[len(pieces)-1]
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// splitWord cuts word into pieces no wider than width. Every piece holds at
// least one rune, so a single glyph wider than width still advances.
func splitWord(word string, width float64, measure func(string) float64) []string {
	if measure(word) <= width {
		return []string{word}
	}
	var pieces []string
	var piece []rune
	for _, r := range word {
		if len(piece) > 0 && measure(string(append(piece, r))) > width {
			pieces = append(pieces, string(piece))
			piece = nil
		}
		piece = append(piece, r)
	}
	return append(pieces, string(piece))
}

// clampLines keeps at most maxLines lines and marks the cut with an ellipsis
// that still fits the width.
func clampLines(lines []string, maxLines int, width float64, measure func(string) float64) []string {
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	out := append([]string(nil), lines[:maxLines]...)
	last := []rune(out[maxLines-1])
	for len(last) > 0 && measure(string(last)+ellipsis) > width {
		last = last[:len(last)-1]
	}
	out[maxLines-1] = strings.TrimRight(string(last), " ") + ellipsis
	return out
}
