package wordstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// seqPicker returns the queued indices in order, wrapping around.
type seqPicker struct {
	idx []int
	pos int
}

func (p *seqPicker) IntN(n int) int {
	i := p.idx[p.pos%len(p.idx)] % n
	p.pos++
	return i
}

func TestParseSkipsBlankLines(t *testing.T) {
	s, err := Parse(strings.NewReader("cat\n\n  dog  \n\nbird"), &seqPicker{idx: []int{0}})
	require.NoError(t, err)
	require.Equal(t, 3, s.Count())
}

func TestParseSkipsWideWords(t *testing.T) {
	s, err := Parse(strings.NewReader("日本\ncafé\nsoup\n"), &seqPicker{idx: []int{0, 1}})
	require.NoError(t, err)
	require.Equal(t, 2, s.Count())
	require.Equal(t, "café soup", s.Words(2))
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader("\n \n"), nil)
	require.ErrorIs(t, err, ErrEmptyDictionary)
}

func TestWordsJoinsWithSingleSpaces(t *testing.T) {
	s, err := New([]string{"cat", "dog", "bird"}, &seqPicker{idx: []int{2, 0, 1, 0}})
	require.NoError(t, err)
	require.Equal(t, "bird cat dog cat", s.Words(4))
	require.Equal(t, "", s.Words(0))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644))

	s, err := Load(path, &seqPicker{idx: []int{1}})
	require.NoError(t, err)
	require.Equal(t, 2, s.Count())
	require.Equal(t, "beta beta", s.Words(2))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), nil)
	require.Error(t, err)
}

func TestLoadBuiltIn(t *testing.T) {
	s, err := Load("", nil)
	require.NoError(t, err)
	require.Greater(t, s.Count(), 100)

	words := strings.Split(s.Words(50), " ")
	require.Len(t, words, 50)
	for _, w := range words {
		require.NotEmpty(t, w)
	}
}
