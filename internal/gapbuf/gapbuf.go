// Package gapbuf implements the positional character store behind a typing
// round: a fixed-capacity array of tagged cells with a relocatable gap so that
// edits next to the cursor stay cheap.
package gapbuf

import (
	"errors"
	"fmt"
)

// MinGap is the headroom kept beyond the seed text. Storage is sized to twice
// (seed + MinGap) so a buffer can be reused for several rounds without
// reallocating.
const MinGap = 128

// MaxCells bounds the storage a single buffer may request.
const MaxCells = 1 << 28

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrAllocation      = errors.New("unable to allocate gap buffer")
)

// Tag is a per-cell format class. The buffer stores it but never interprets it.
type Tag uint8

// Cell is a single stored character and its format class.
type Cell struct {
	Value rune
	Tag   Tag
}

// Buffer holds logical content in cells[0:gapL] followed by cells[gapR+1:].
// The gap is cells[gapL:gapR+1]; it is empty when gapR == gapL-1.
type Buffer struct {
	cells  []Cell
	gapL   int
	gapR   int
	cursor int
}

// New allocates a buffer seeded with text, every cell tagged with tag.
func New(text []rune, tag Tag) (*Buffer, error) {
	b := &Buffer{gapR: -1}
	if err := b.Reset(text, tag); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset reseeds the buffer. Existing storage is reused when it still leaves
// MinGap of headroom; otherwise it grows with the same doubling policy as New.
func (b *Buffer) Reset(text []rune, tag Tag) error {
	required := len(text) + MinGap
	if len(b.cells) < required {
		cells, err := allocate(required * 2)
		if err != nil {
			return err
		}
		b.cells = cells
	}
	for i, r := range text {
		b.cells[i] = Cell{Value: r, Tag: tag}
	}
	b.gapL = len(text)
	b.gapR = len(b.cells) - 1
	b.cursor = 0
	return nil
}

func allocate(n int) ([]Cell, error) {
	if n < 0 || n > MaxCells {
		return nil, fmt.Errorf("%w: %d cells requested", ErrAllocation, n)
	}
	return make([]Cell, n), nil
}

// Cap returns the physical storage size.
func (b *Buffer) Cap() int {
	return len(b.cells)
}

// Gap returns the number of free cells.
func (b *Buffer) Gap() int {
	return b.gapR - b.gapL + 1
}

// Len returns the logical length.
func (b *Buffer) Len() int {
	return len(b.cells) - b.Gap()
}

// Cursor returns the logical edit position, in [0, Len()].
func (b *Buffer) Cursor() int {
	return b.cursor
}

// MoveCursor places the edit cursor on logical index i and parks the gap
// directly after that cell. Cost is proportional to how far the gap travels.
func (b *Buffer) MoveCursor(i int) error {
	n := b.Len()
	if n == 0 {
		if i != 0 {
			return fmt.Errorf("%w: %d in empty buffer", ErrIndexOutOfRange, i)
		}
		b.cursor = 0
		return nil
	}
	if i < 0 || i > n-1 {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, i, n-1)
	}
	b.moveGap(i + 1)
	b.cursor = i
	return nil
}

// moveGap shifts cells one at a time across the gap until gapL == pos.
func (b *Buffer) moveGap(pos int) {
	for b.gapL > pos {
		b.gapL--
		b.cells[b.gapR] = b.cells[b.gapL]
		b.gapR--
	}
	for b.gapL < pos {
		b.gapR++
		b.cells[b.gapL] = b.cells[b.gapR]
		b.gapL++
	}
}

// Overtype replaces the cell under the cursor. Length and cursor are unchanged.
func (b *Buffer) Overtype(c rune, tag Tag) error {
	if b.cursor >= b.Len() {
		return fmt.Errorf("%w: overtype at %d, length %d", ErrIndexOutOfRange, b.cursor, b.Len())
	}
	b.cells[b.physical(b.cursor)] = Cell{Value: c, Tag: tag}
	return nil
}

// Insert writes a new cell at the cursor, shifting the rest of the content
// right, and advances the cursor. It reports false when the gap is exhausted;
// the caller is expected to Grow and retry.
func (b *Buffer) Insert(c rune, tag Tag) bool {
	if b.Gap() == 0 {
		return false
	}
	b.moveGap(b.cursor)
	b.cells[b.gapL] = Cell{Value: c, Tag: tag}
	b.gapL++
	b.cursor++
	return true
}

// Grow reallocates storage so that at least extra free cells are available.
func (b *Buffer) Grow(extra int) error {
	if extra <= b.Gap() {
		return nil
	}
	n := b.Len()
	cells, err := allocate((n + extra + MinGap) * 2)
	if err != nil {
		return err
	}
	copy(cells, b.cells[:b.gapL])
	tail := b.cells[b.gapR+1:]
	copy(cells[len(cells)-len(tail):], tail)
	b.gapR = len(cells) - len(tail) - 1
	b.cells = cells
	return nil
}

// At returns the cell at logical index i without touching either cursor.
func (b *Buffer) At(i int) (Cell, bool) {
	if i < 0 || i >= b.Len() {
		return Cell{}, false
	}
	return b.cells[b.physical(i)], true
}

func (b *Buffer) physical(i int) int {
	if i < b.gapL {
		return i
	}
	return i + b.Gap()
}

// String returns the logical content without tags.
func (b *Buffer) String() string {
	out := make([]rune, 0, b.Len())
	for _, c := range b.cells[:b.gapL] {
		out = append(out, c.Value)
	}
	for _, c := range b.cells[b.gapR+1:] {
		out = append(out, c.Value)
	}
	return string(out)
}

// Destroy releases storage. The buffer reads as empty afterwards and may be
// Reset again.
func (b *Buffer) Destroy() {
	b.cells = nil
	b.gapL = 0
	b.gapR = -1
	b.cursor = 0
}
