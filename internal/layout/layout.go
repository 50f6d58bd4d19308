// Package layout word-wraps buffer content into a table of lines.
//
// The table is a pure function of the content and is rebuilt from scratch on
// every render. Rounds are short, so a full pass costs less than keeping an
// incremental table correct.
package layout

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/kobzarvs/jankey/internal/gapbuf"
)

var (
	ErrUnwrappableWord = errors.New("word wider than line")
	ErrInvalidWidth    = errors.New("line width must be positive")
)

// Source is the read side of a gap buffer.
type Source interface {
	Len() int
	At(i int) (gapbuf.Cell, bool)
}

// Line is an inclusive range of logical indices.
type Line struct {
	Start int
	End   int
}

func (l Line) Len() int {
	return l.End - l.Start + 1
}

// Contains reports whether logical index i falls on the line.
func (l Line) Contains(i int) bool {
	return i >= l.Start && i <= l.End
}

// Table is an ordered, contiguous set of lines covering [0, Len).
type Table struct {
	Lines      []Line
	CursorLine int
}

// Compute builds a fresh table. See Table.Recompute.
func Compute(src Source, width, cursor int) (Table, error) {
	var t Table
	err := t.Recompute(src, width, cursor)
	return t, err
}

// Recompute rebuilds the table in place, reusing the line slice.
//
// Lines are filled greedily. When the next character would overflow width
// in the middle of a word, the line ends after the last non-letter inside the
// span and the partial word moves down. A word that cannot fit on a line of
// its own is an ErrUnwrappableWord.
//
// CursorLine is the line containing cursor; a cursor at Len() belongs to the
// last line.
func (t *Table) Recompute(src Source, width, cursor int) error {
	t.Lines = t.Lines[:0]
	t.CursorLine = 0
	if width < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}

	n := src.Len()
	for start := 0; start < n; {
		end, err := lineEnd(src, start, width, n)
		if err != nil {
			return err
		}
		line := Line{Start: start, End: end}
		if line.Contains(cursor) {
			t.CursorLine = len(t.Lines)
		}
		t.Lines = append(t.Lines, line)
		start = end + 1
	}
	if cursor >= n && len(t.Lines) > 0 {
		t.CursorLine = len(t.Lines) - 1
	}
	return nil
}

func lineEnd(src Source, start, width, n int) (int, error) {
	limit := start + width
	if limit >= n {
		return n - 1, nil
	}
	for i := limit - 1; i >= start; i-- {
		if !isLetter(src, i) {
			return i, nil
		}
	}
	// The span is one unbroken word; it fits only if a break follows it.
	if !isLetter(src, limit) {
		return limit - 1, nil
	}
	return 0, fmt.Errorf("%w: word at %d exceeds width %d", ErrUnwrappableWord, start, width)
}

func isLetter(src Source, i int) bool {
	c, ok := src.At(i)
	return ok && unicode.IsLetter(c.Value)
}
