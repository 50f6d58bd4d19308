package view

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/jankey/internal/gapbuf"
)

// Styles maps format classes to terminal styles. Base is used for padding,
// cleared cells and any tag without an entry.
type Styles struct {
	Base  tcell.Style
	ByTag map[gapbuf.Tag]tcell.Style
}

func (st Styles) For(tag gapbuf.Tag) tcell.Style {
	if s, ok := st.ByTag[tag]; ok {
		return s
	}
	return st.Base
}

// WideGlyph stands in for runes that do not occupy exactly one column.
const WideGlyph = '?'

// ScreenSurface is a fixed-size window on a tcell screen, centered on it.
type ScreenSurface struct {
	screen tcell.Screen
	styles Styles
	x, y   int
	w, h   int
	row    int
	col    int
}

// NewScreenSurface centers a w x h window on s. The window is clipped to the
// screen when the screen is smaller.
func NewScreenSurface(s tcell.Screen, w, h int, styles Styles) *ScreenSurface {
	sw, sh := s.Size()
	w = min(w, sw)
	h = min(h, sh)
	return &ScreenSurface{
		screen: s,
		styles: styles,
		x:      max((sw-w)/2, 0),
		y:      max((sh-h)/2, 0),
		w:      w,
		h:      h,
	}
}

func (ss *ScreenSurface) Width() int {
	return ss.w
}

// Origin returns the screen coordinates of the window's top-left cell.
func (ss *ScreenSurface) Origin() (x, y int) {
	return ss.x, ss.y
}

func (ss *ScreenSurface) MoveTo(row, col int) {
	ss.row = row
	ss.col = col
}

// DrawChar fills one column. Layout counts one column per cell, so a rune
// that is not exactly one column wide is drawn as WideGlyph.
func (ss *ScreenSurface) DrawChar(ch rune, tag gapbuf.Tag) {
	if ss.row < 0 || ss.row >= ss.h || ss.col >= ss.w {
		return
	}
	if runewidth.RuneWidth(ch) != 1 {
		ch = WideGlyph
	}
	ss.screen.SetContent(ss.x+ss.col, ss.y+ss.row, ch, nil, ss.styles.For(tag))
	ss.col++
}

func (ss *ScreenSurface) ClearToRowEnd() {
	if ss.row < 0 || ss.row >= ss.h {
		return
	}
	for col := ss.col; col < ss.w; col++ {
		ss.screen.SetContent(ss.x+col, ss.y+ss.row, ' ', nil, ss.styles.Base)
	}
	ss.col = ss.w
}

func (ss *ScreenSurface) PlaceCursor(row, col int) {
	ss.screen.ShowCursor(ss.x+col, ss.y+row)
}
