package gapbuf

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

const (
	tagDefault Tag = iota
	tagCorrect
	tagIncorrect
)

func mustNew(t *testing.T, text string) *Buffer {
	t.Helper()
	b, err := New([]rune(text), tagDefault)
	if err != nil {
		t.Fatalf("New(%q): %v", text, err)
	}
	return b
}

func readAll(b *Buffer) string {
	out := make([]rune, 0, b.Len())
	for i := 0; i < b.Len(); i++ {
		c, ok := b.At(i)
		if !ok {
			return string(out)
		}
		out = append(out, c.Value)
	}
	return string(out)
}

func TestNewSizesStorageWithHeadroom(t *testing.T) {
	b := mustNew(t, "cat dog")
	if b.Len() != 7 {
		t.Fatalf("Len = %d, want 7", b.Len())
	}
	if want := (7 + MinGap) * 2; b.Cap() != want {
		t.Fatalf("Cap = %d, want %d", b.Cap(), want)
	}
	if b.Cursor() != 0 {
		t.Fatalf("Cursor = %d, want 0", b.Cursor())
	}
	if got := b.String(); got != "cat dog" {
		t.Fatalf("String = %q, want %q", got, "cat dog")
	}
	for i := 0; i < b.Len(); i++ {
		c, _ := b.At(i)
		if c.Tag != tagDefault {
			t.Fatalf("cell %d tag = %d, want default", i, c.Tag)
		}
	}
}

func TestResetReusesStorage(t *testing.T) {
	b := mustNew(t, "some longer seed text")
	before := b.Cap()
	if err := b.MoveCursor(5); err != nil {
		t.Fatalf("MoveCursor: %v", err)
	}
	if err := b.Reset([]rune("short"), tagCorrect); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if b.Cap() != before {
		t.Fatalf("Cap = %d, want reused %d", b.Cap(), before)
	}
	if b.Cursor() != 0 {
		t.Fatalf("Cursor = %d, want 0", b.Cursor())
	}
	if got := readAll(b); got != "short" {
		t.Fatalf("content = %q, want %q", got, "short")
	}
	c, _ := b.At(0)
	if c.Tag != tagCorrect {
		t.Fatalf("tag = %d, want %d", c.Tag, tagCorrect)
	}
}

func TestResetGrowsWhenSeedTooLarge(t *testing.T) {
	b := mustNew(t, "ab")
	long := make([]rune, b.Cap())
	for i := range long {
		long[i] = 'x'
	}
	if err := b.Reset(long, tagDefault); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if want := (len(long) + MinGap) * 2; b.Cap() != want {
		t.Fatalf("Cap = %d, want %d", b.Cap(), want)
	}
	if b.Len() != len(long) {
		t.Fatalf("Len = %d, want %d", b.Len(), len(long))
	}
}

func TestMoveCursorRange(t *testing.T) {
	b := mustNew(t, "abc")
	for _, i := range []int{-1, 3, 10} {
		err := b.MoveCursor(i)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("MoveCursor(%d) err = %v, want ErrIndexOutOfRange", i, err)
		}
	}
	if b.Cursor() != 0 {
		t.Fatalf("cursor moved on error: %d", b.Cursor())
	}
	if err := b.MoveCursor(2); err != nil {
		t.Fatalf("MoveCursor(2): %v", err)
	}
	if b.Cursor() != 2 {
		t.Fatalf("Cursor = %d, want 2", b.Cursor())
	}

	empty := mustNew(t, "")
	if err := empty.MoveCursor(0); err != nil {
		t.Fatalf("MoveCursor(0) on empty: %v", err)
	}
	if err := empty.MoveCursor(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("MoveCursor(1) on empty err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestOvertypeKeepsLength(t *testing.T) {
	b := mustNew(t, "cat")
	if err := b.MoveCursor(1); err != nil {
		t.Fatalf("MoveCursor: %v", err)
	}
	if err := b.Overtype('u', tagIncorrect); err != nil {
		t.Fatalf("Overtype: %v", err)
	}
	if got := b.String(); got != "cut" {
		t.Fatalf("String = %q, want %q", got, "cut")
	}
	if b.Len() != 3 {
		t.Fatalf("Len = %d, want 3", b.Len())
	}
	c, _ := b.At(1)
	if c.Tag != tagIncorrect {
		t.Fatalf("tag = %d, want %d", c.Tag, tagIncorrect)
	}
}

func TestOvertypePastEnd(t *testing.T) {
	b := mustNew(t, "")
	if err := b.Overtype('x', tagDefault); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("Overtype on empty err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestInsertShiftsFollowingCells(t *testing.T) {
	b := mustNew(t, "cat")
	if err := b.MoveCursor(1); err != nil {
		t.Fatalf("MoveCursor: %v", err)
	}
	if !b.Insert('h', tagCorrect) {
		t.Fatalf("Insert failed")
	}
	if got := b.String(); got != "chat" {
		t.Fatalf("String = %q, want %q", got, "chat")
	}
	if b.Cursor() != 2 {
		t.Fatalf("Cursor = %d, want 2", b.Cursor())
	}
	if !b.Insert('e', tagCorrect) {
		t.Fatalf("Insert failed")
	}
	if got := b.String(); got != "cheat" {
		t.Fatalf("String = %q, want %q", got, "cheat")
	}
}

func TestInsertFailsWhenGapExhausted(t *testing.T) {
	b := mustNew(t, "a")
	free := b.Gap()
	for i := 0; i < free; i++ {
		if !b.Insert('x', tagDefault) {
			t.Fatalf("Insert %d failed with %d free", i, free-i)
		}
	}
	if b.Gap() != 0 {
		t.Fatalf("Gap = %d, want 0", b.Gap())
	}
	before := b.String()
	if b.Insert('y', tagDefault) {
		t.Fatalf("Insert succeeded with exhausted gap")
	}
	if b.String() != before {
		t.Fatalf("content changed on failed insert")
	}

	if err := b.Grow(1); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if b.String() != before {
		t.Fatalf("Grow changed content: %q", b.String())
	}
	if !b.Insert('y', tagDefault) {
		t.Fatalf("Insert after Grow failed")
	}
	if got, want := b.Len(), len([]rune(before))+1; got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}
}

func TestGrowPreservesContentAroundGap(t *testing.T) {
	b := mustNew(t, "hello world")
	if err := b.MoveCursor(4); err != nil {
		t.Fatalf("MoveCursor: %v", err)
	}
	if err := b.Grow(b.Gap() + 10); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if got := b.String(); got != "hello world" {
		t.Fatalf("String = %q, want %q", got, "hello world")
	}
	if got := readAll(b); got != "hello world" {
		t.Fatalf("indexed read = %q", got)
	}
}

func TestGrowRejectsHugeRequests(t *testing.T) {
	b := mustNew(t, "a")
	if err := b.Grow(MaxCells); !errors.Is(err, ErrAllocation) {
		t.Fatalf("Grow err = %v, want ErrAllocation", err)
	}
}

func TestAtOutOfRange(t *testing.T) {
	b := mustNew(t, "ab")
	if _, ok := b.At(-1); ok {
		t.Fatalf("At(-1) ok")
	}
	if _, ok := b.At(2); ok {
		t.Fatalf("At(2) ok")
	}
}

func TestScannerCrossesGap(t *testing.T) {
	b := mustNew(t, "abcdef")
	if err := b.MoveCursor(2); err != nil {
		t.Fatalf("MoveCursor: %v", err)
	}
	s := b.ScanFrom(1)
	var got []rune
	for {
		c, ok := s.Next()
		if !ok {
			break
		}
		got = append(got, c.Value)
	}
	if string(got) != "bcdef" {
		t.Fatalf("scan = %q, want %q", string(got), "bcdef")
	}
	if b.Cursor() != 2 {
		t.Fatalf("scan moved cursor to %d", b.Cursor())
	}
	if _, ok := b.ScanFrom(6).Next(); ok {
		t.Fatalf("scan past end returned a cell")
	}
}

func TestDestroy(t *testing.T) {
	b := mustNew(t, "abc")
	b.Destroy()
	if b.Len() != 0 || b.Cap() != 0 {
		t.Fatalf("after Destroy Len=%d Cap=%d", b.Len(), b.Cap())
	}
	if err := b.Reset([]rune("xy"), tagDefault); err != nil {
		t.Fatalf("Reset after Destroy: %v", err)
	}
	if b.String() != "xy" {
		t.Fatalf("String = %q", b.String())
	}
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.StringMatching(`[a-z ]{1,40}`).Draw(t, "seed")
		b, err := New([]rune(seed), tagDefault)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		want := []rune(seed)
		cursor := 0
		steps := rapid.IntRange(0, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			r := rapid.RuneFrom([]rune("abcxyz ")).Draw(t, "rune")
			if rapid.Bool().Draw(t, "insert") {
				if !b.Insert(r, tagCorrect) {
					if err := b.Grow(1); err != nil {
						t.Fatalf("Grow: %v", err)
					}
					if !b.Insert(r, tagCorrect) {
						t.Fatalf("Insert after Grow failed")
					}
				}
				want = append(want[:cursor], append([]rune{r}, want[cursor:]...)...)
				cursor++
			} else if cursor < len(want) {
				if err := b.Overtype(r, tagIncorrect); err != nil {
					t.Fatalf("Overtype: %v", err)
				}
				want[cursor] = r
			}
			if b.Cursor() != cursor {
				t.Fatalf("Cursor = %d, want %d", b.Cursor(), cursor)
			}
		}
		if got := readAll(b); got != string(want) {
			t.Fatalf("content = %q, want %q", got, string(want))
		}
	})
}

func TestMoveCursorProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.StringMatching(`[a-z ]{1,40}`).Draw(t, "seed")
		b, err := New([]rune(seed), tagDefault)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		moves := rapid.SliceOfN(rapid.IntRange(0, len([]rune(seed))-1), 1, 20).Draw(t, "moves")
		for _, i := range moves {
			if err := b.MoveCursor(i); err != nil {
				t.Fatalf("MoveCursor(%d): %v", i, err)
			}
			first := readAll(b)
			if err := b.MoveCursor(i); err != nil {
				t.Fatalf("second MoveCursor(%d): %v", i, err)
			}
			if b.Cursor() != i {
				t.Fatalf("Cursor = %d, want %d", b.Cursor(), i)
			}
			if got := readAll(b); got != first || got != seed {
				t.Fatalf("content after move = %q, want %q", got, seed)
			}
		}
	})
}
