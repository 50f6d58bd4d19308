package app

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/jankey/internal/config"
	"github.com/kobzarvs/jankey/internal/gapbuf"
	"github.com/kobzarvs/jankey/internal/modal"
	"github.com/kobzarvs/jankey/internal/view"
)

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

func viewStyles(t config.Theme) view.Styles {
	base := tcell.StyleDefault.
		Foreground(parseColor(t.Foreground, tcell.ColorDefault)).
		Background(parseColor(t.Background, tcell.ColorDefault))
	return view.Styles{
		Base: base,
		ByTag: map[gapbuf.Tag]tcell.Style{
			view.TagCorrect:   base.Foreground(parseColor(t.Correct, tcell.ColorGreen)),
			view.TagIncorrect: base.Foreground(parseColor(t.Incorrect, tcell.ColorRed)),
		},
	}
}

func modalStyles(t config.Theme) modal.Styles {
	body := tcell.StyleDefault.
		Foreground(parseColor(t.Foreground, tcell.ColorDefault)).
		Background(parseColor(t.Background, tcell.ColorDefault))
	return modal.Styles{
		Body:   body,
		Border: body.Foreground(parseColor(t.ModalBorder, tcell.ColorGray)),
	}
}

// insertKey maps the configured key name to a tcell key.
func insertKey(name string) tcell.Key {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tab":
		return tcell.KeyTab
	case "insert", "ins":
		return tcell.KeyInsert
	}
	return tcell.KeyNUL
}

func viewOptions(r config.RoundOptions) view.Options {
	opts := view.DefaultOptions()
	opts.MaxLineWidth = r.MaxLineWidth
	opts.WindowHeight = r.WindowHeight
	opts.MinDisplayWidth = r.MinDisplayWidth
	if g := []rune(r.SpaceGlyph); len(g) > 0 {
		opts.SpaceGlyph = g[0]
	}
	return opts
}
