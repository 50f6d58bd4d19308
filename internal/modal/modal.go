// Package modal draws the post-round summary and waits for the player to
// start a new round or quit.
package modal

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	Width  = 50
	Height = 7
)

type Choice int

const (
	ChoiceQuit Choice = iota
	ChoiceNew
)

// Summary is what the modal reports about the finished round.
type Summary struct {
	Elapsed  time.Duration
	WPM      float64
	Accuracy float64
	BestWPM  float64
	HasBest  bool

	// Recent holds WPM of the latest rounds, newest first.
	Recent []float64
}

type Styles struct {
	Body   tcell.Style
	Border tcell.Style
}

const instructions = " [N]ew    [Q]uit "

// Lines returns the body rows shown inside the box.
func (s Summary) Lines() []string {
	lines := []string{
		fmt.Sprintf("%-16s%ds", "TIME", int(s.Elapsed.Round(time.Second)/time.Second)),
		fmt.Sprintf("%-16s%.1f", "WPM:", s.WPM),
		fmt.Sprintf("%-16s%.0f%%", "ACCURACY:", s.Accuracy),
	}
	if s.HasBest {
		lines = append(lines, fmt.Sprintf("%-16s%.1f", "BEST:", s.BestWPM))
	}
	if len(s.Recent) > 0 {
		parts := make([]string, 0, len(s.Recent))
		for _, w := range s.Recent {
			parts = append(parts, fmt.Sprintf("%.1f", w))
		}
		lines = append(lines, fmt.Sprintf("%-16s%s", "RECENT:", strings.Join(parts, "  ")))
	}
	return lines
}

// Render draws the box centered on the screen.
func Render(s tcell.Screen, sum Summary, st Styles) {
	sw, sh := s.Size()
	boxW := min(Width, sw)
	boxH := min(Height, sh)
	x := max(0, (sw-boxW)/2)
	y := max(0, (sh-boxH)/2)

	s.HideCursor()
	for yy := range boxH {
		for xx := 0; xx < boxW; xx++ {
			ch := ' '
			style := st.Body
			if yy == 0 || yy == boxH-1 || xx == 0 || xx == boxW-1 {
				ch = '│'
				if yy == 0 || yy == boxH-1 {
					ch = '─'
				}
				if yy == 0 && xx == 0 {
					ch = '┌'
				} else if yy == 0 && xx == boxW-1 {
					ch = '┐'
				} else if yy == boxH-1 && xx == 0 {
					ch = '└'
				} else if yy == boxH-1 && xx == boxW-1 {
					ch = '┘'
				}
				style = st.Border
			}
			s.SetContent(x+xx, y+yy, ch, nil, style)
		}
	}

	// Rows 1..boxH-2 are inside the border; the instructions sit on the
	// bottom border.
	for i, line := range sum.Lines() {
		row := 1 + i
		if row > boxH-2 {
			break
		}
		drawText(s, x+2, y+row, boxW-4, line, st.Body)
	}
	if boxH >= 3 {
		iw := runewidth.StringWidth(instructions)
		drawText(s, x+max(0, (boxW-iw)/2), y+boxH-1, boxW-2, instructions, st.Body)
	}
}

func drawText(s tcell.Screen, x, y, maxW int, text string, style tcell.Style) {
	used := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if used+w > maxW {
			return
		}
		s.SetContent(x+used, y, r, nil, style)
		used += w
	}
}

// Run renders the modal and blocks until a choice is made. A closed event
// stream counts as quitting.
func Run(s tcell.Screen, sum Summary, st Styles) Choice {
	s.Clear()
	Render(s, sum, st)
	s.Show()
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return ChoiceQuit
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return ChoiceQuit
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'n', 'N':
					return ChoiceNew
				case 'q', 'Q':
					return ChoiceQuit
				}
			}
		case *tcell.EventResize:
			s.Sync()
			s.Clear()
			Render(s, sum, st)
			s.Show()
		}
	}
}
