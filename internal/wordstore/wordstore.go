// Package wordstore loads a dictionary and draws random seed text from it.
package wordstore

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ErrEmptyDictionary = errors.New("dictionary has no words")

//go:embed words.txt
var defaultWords string

// Picker chooses an index in [0, n).
type Picker interface {
	IntN(n int) int
}

type Store struct {
	words  []string
	picker Picker
}

// New builds a store over words. A nil picker uses a randomly seeded
// generator.
func New(words []string, picker Picker) (*Store, error) {
	if len(words) == 0 {
		return nil, ErrEmptyDictionary
	}
	if picker == nil {
		picker = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Store{words: words, picker: picker}, nil
}

// Load reads one word per line from path. An empty path loads the built-in
// list.
func Load(path string, picker Picker) (*Store, error) {
	if path == "" {
		return Parse(strings.NewReader(defaultWords), picker)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	s, err := Parse(f, picker)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse reads one word per line. Blank lines are skipped and surrounding
// whitespace is trimmed. Words holding a rune that is not exactly one terminal
// column wide are skipped.
func Parse(r io.Reader, picker Picker) (*Store, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || !narrow(w) {
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(words, picker)
}

func narrow(w string) bool {
	for _, r := range w {
		if runewidth.RuneWidth(r) != 1 {
			return false
		}
	}
	return true
}

func (s *Store) Count() int {
	return len(s.words)
}

// Words joins n randomly chosen words with single spaces.
func (s *Store) Words(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.words[s.picker.IntN(len(s.words))])
	}
	return b.String()
}
