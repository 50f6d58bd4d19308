package view

import "github.com/kobzarvs/jankey/internal/layout"

// Band is the inclusive range of line indices on screen. An empty table
// yields Last < First.
type Band struct {
	First int
	Last  int
}

// Rows returns the number of lines in the band.
func (b Band) Rows() int {
	return b.Last - b.First + 1
}

// SelectBand picks which lines are visible. The cursor line sits one row below
// the top so the previous line stays readable, except at either end of the
// text where the band is pinned.
func SelectBand(lineCount, height, cursorLine int) Band {
	if lineCount <= 0 || height <= 0 {
		return Band{First: 0, Last: -1}
	}
	if lineCount <= height {
		return Band{First: 0, Last: lineCount - 1}
	}
	switch {
	case cursorLine <= 0:
		return Band{First: 0, Last: height - 1}
	case cursorLine >= lineCount-1:
		return Band{First: lineCount - height, Last: lineCount - 1}
	}
	first := cursorLine - 1
	if first+height > lineCount {
		first = lineCount - height
	}
	return Band{First: first, Last: first + height - 1}
}

// CenterOffset is the blank padding that centers a line of lineLen cells.
func CenterOffset(lineLen, width int) int {
	if width <= lineLen {
		return 0
	}
	return (width - lineLen) / 2
}

// MapCursor converts a logical cursor index into a (row, col) inside the band.
func MapCursor(lines []layout.Line, cursor, cursorLine int, band Band, width int) (row, col int) {
	if cursorLine < 0 || cursorLine >= len(lines) {
		return 0, 0
	}
	line := lines[cursorLine]
	row = cursorLine - band.First
	col = CenterOffset(line.Len(), width) + cursor - line.Start
	return row, col
}
