// Package view ties a gap buffer to its line layout and draws the visible
// band of a typing round onto a display surface.
package view

import (
	"errors"
	"fmt"

	"github.com/kobzarvs/jankey/internal/gapbuf"
	"github.com/kobzarvs/jankey/internal/layout"
	"github.com/kobzarvs/jankey/internal/logger"
)

var ErrInvalidDimensions = errors.New("display too narrow")

// Format classes carried by every cell.
const (
	TagDefault gapbuf.Tag = iota
	TagCorrect
	TagIncorrect
)

// Mode selects how TypeChar writes into the buffer.
type Mode int

const (
	ModeOvertype Mode = iota
	ModeInsert
)

// Surface is the drawing target. Rows and columns are relative to the
// surface origin.
type Surface interface {
	Width() int
	MoveTo(row, col int)
	DrawChar(ch rune, tag gapbuf.Tag)
	ClearToRowEnd()
	PlaceCursor(row, col int)
}

type Options struct {
	MaxLineWidth    int
	WindowHeight    int
	MinDisplayWidth int

	// SpaceGlyph replaces ' ' when drawing so word breaks stay visible.
	SpaceGlyph rune
}

func DefaultOptions() Options {
	return Options{
		MaxLineWidth:    66,
		WindowHeight:    3,
		MinDisplayWidth: 24,
		SpaceGlyph:      '_',
	}
}

type View struct {
	opts   Options
	width  int
	buf    *gapbuf.Buffer
	seed   []rune
	cursor int
	table  layout.Table
}

// New creates a view for a display displayWidth cells wide. Lines wrap at the
// smaller of MaxLineWidth and displayWidth.
func New(seed string, displayWidth int, opts Options) (*View, error) {
	width := min(opts.MaxLineWidth, displayWidth)
	if width < opts.MinDisplayWidth {
		return nil, fmt.Errorf("%w: width %d, need at least %d", ErrInvalidDimensions, width, opts.MinDisplayWidth)
	}
	if opts.WindowHeight < 1 {
		return nil, fmt.Errorf("%w: window height %d", ErrInvalidDimensions, opts.WindowHeight)
	}
	v := &View{opts: opts, width: width}
	runes := []rune(seed)
	buf, err := gapbuf.New(runes, TagDefault)
	if err != nil {
		return nil, err
	}
	v.buf = buf
	v.seed = runes
	if err := v.relayout(); err != nil {
		return nil, err
	}
	return v, nil
}

// Reset loads a new seed text, reusing the buffer storage.
func (v *View) Reset(seed string) error {
	runes := []rune(seed)
	if err := v.buf.Reset(runes, TagDefault); err != nil {
		return err
	}
	v.seed = runes
	v.cursor = 0
	return v.relayout()
}

func (v *View) relayout() error {
	if err := v.table.Recompute(v.buf, v.width, v.cursor); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

// Resize rewraps for a display displayWidth cells wide. On error the view
// keeps its previous width.
func (v *View) Resize(displayWidth int) error {
	width := min(v.opts.MaxLineWidth, displayWidth)
	if width == v.width {
		return nil
	}
	if width < v.opts.MinDisplayWidth {
		return fmt.Errorf("%w: width %d, need at least %d", ErrInvalidDimensions, width, v.opts.MinDisplayWidth)
	}
	old := v.width
	v.width = width
	if err := v.relayout(); err != nil {
		v.width = old
		_ = v.relayout()
		return err
	}
	return nil
}

// Width is the line width the view wraps and centers against.
func (v *View) Width() int {
	return v.width
}

func (v *View) Len() int {
	return v.buf.Len()
}

func (v *View) CursorIndex() int {
	return v.cursor
}

// CharAt returns the stored character and its tag at logical index i.
func (v *View) CharAt(i int) (rune, gapbuf.Tag, bool) {
	c, ok := v.buf.At(i)
	return c.Value, c.Tag, ok
}

// SeedAt returns the character the round expects at index i.
func (v *View) SeedAt(i int) (rune, bool) {
	if i < 0 || i >= len(v.seed) {
		return 0, false
	}
	return v.seed[i], true
}

// Lines returns the line table as of the last render or reset.
func (v *View) Lines() []layout.Line {
	return v.table.Lines
}

func (v *View) CursorLine() int {
	return v.table.CursorLine
}

// TypeChar records a keystroke at the cursor and returns the new cursor index.
//
// The final character is written but the cursor stays on it, so an unchanged
// return value means the text is exhausted and the round is over.
func (v *View) TypeChar(c rune, tag gapbuf.Tag, mode Mode) int {
	n := v.buf.Len()
	if n == 0 {
		return v.cursor
	}
	if err := v.buf.MoveCursor(v.cursor); err != nil {
		logger.Error("cursor out of sync", "cursor", v.cursor, "len", n, "err", err)
		return v.cursor
	}
	if v.cursor >= n-1 || mode == ModeOvertype {
		if err := v.buf.Overtype(c, tag); err != nil {
			logger.Error("overtype failed", "cursor", v.cursor, "err", err)
			return v.cursor
		}
		if v.cursor >= n-1 {
			return v.cursor
		}
		v.cursor++
		return v.cursor
	}
	if !v.insert(c, tag) {
		return v.cursor
	}
	v.cursor = v.buf.Cursor()
	return v.cursor
}

func (v *View) insert(c rune, tag gapbuf.Tag) bool {
	if v.buf.Insert(c, tag) {
		return true
	}
	logger.Debug("gap exhausted, growing buffer", "len", v.buf.Len(), "cap", v.buf.Cap())
	if err := v.buf.Grow(gapbuf.MinGap); err != nil {
		logger.Error("grow failed", "err", err)
		return false
	}
	return v.buf.Insert(c, tag)
}

// DeleteChar steps the cursor back one cell and restores that cell to the
// seed character with the default tag.
func (v *View) DeleteChar() int {
	if v.cursor == 0 {
		return v.cursor
	}
	v.cursor--
	if err := v.buf.MoveCursor(v.cursor); err != nil {
		logger.Error("cursor out of sync", "cursor", v.cursor, "err", err)
		return v.cursor
	}
	restore, _, _ := v.CharAt(v.cursor)
	if v.cursor < len(v.seed) {
		restore = v.seed[v.cursor]
	}
	if err := v.buf.Overtype(restore, TagDefault); err != nil {
		logger.Error("restore failed", "cursor", v.cursor, "err", err)
	}
	return v.cursor
}

// Render relays out the content and draws the band around the cursor line.
func (v *View) Render(s Surface) error {
	if s.Width() < v.width {
		return fmt.Errorf("%w: surface width %d, lines wrap at %d", ErrInvalidDimensions, s.Width(), v.width)
	}
	if err := v.relayout(); err != nil {
		return err
	}
	lines := v.table.Lines
	band := SelectBand(len(lines), v.opts.WindowHeight, v.table.CursorLine)

	for row := 0; row < band.Rows(); row++ {
		line := lines[band.First+row]
		s.MoveTo(row, 0)
		for i := CenterOffset(line.Len(), v.width); i > 0; i-- {
			s.DrawChar(' ', TagDefault)
		}
		sc := v.buf.ScanFrom(line.Start)
		for i := 0; i < line.Len(); i++ {
			c, ok := sc.Next()
			if !ok {
				break
			}
			ch := c.Value
			if ch == ' ' && v.opts.SpaceGlyph != 0 {
				ch = v.opts.SpaceGlyph
			}
			s.DrawChar(ch, c.Tag)
		}
		s.ClearToRowEnd()
	}
	for row := max(band.Rows(), 0); row < v.opts.WindowHeight; row++ {
		s.MoveTo(row, 0)
		s.ClearToRowEnd()
	}

	row, col := MapCursor(lines, v.cursor, v.table.CursorLine, band, v.width)
	s.PlaceCursor(row, col)
	return nil
}
