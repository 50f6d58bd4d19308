package gapbuf

// Scanner reads cells sequentially. Its position is independent of the edit
// cursor, so a render pass never disturbs editing state.
type Scanner struct {
	b    *Buffer
	phys int
	left int
}

// ScanFrom returns a scanner positioned on logical index i. Positions outside
// the content yield an exhausted scanner.
func (b *Buffer) ScanFrom(i int) *Scanner {
	s := &Scanner{b: b}
	if i < 0 || i >= b.Len() {
		return s
	}
	s.phys = b.physical(i)
	s.left = b.Len() - i
	return s
}

// Next returns the current cell and advances. ok is false once the content
// is exhausted.
func (s *Scanner) Next() (Cell, bool) {
	if s.left == 0 {
		return Cell{}, false
	}
	if s.phys == s.b.gapL {
		s.phys = s.b.gapR + 1
	}
	c := s.b.cells[s.phys]
	s.phys++
	s.left--
	return c, true
}
