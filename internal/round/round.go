// Package round runs a single typing round on a tcell screen.
package round

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/jankey/internal/logger"
	"github.com/kobzarvs/jankey/internal/stats"
	"github.com/kobzarvs/jankey/internal/view"
)

// Source supplies the seed text for a round.
type Source interface {
	Words(n int) string
}

type Options struct {
	View  view.Options
	Words int

	// RefreshRate bounds how long the loop sleeps waiting for input, in Hz.
	RefreshRate int

	// InsertKey toggles insert mode. tcell.KeyNUL disables it.
	InsertKey tcell.Key
}

// Result describes how a round ended.
type Result struct {
	Quit     bool
	Chars    int
	Elapsed  time.Duration
	WPM      float64
	Accuracy float64
}

type Round struct {
	screen tcell.Screen
	opts   Options
	source Source
	stats  *stats.Stats
	styles view.Styles

	v       *view.View
	surface *view.ScreenSurface
	mode    view.Mode
	done    bool
	quit    bool
	dirty   bool
}

func New(s tcell.Screen, opts Options, source Source, st *stats.Stats, styles view.Styles) *Round {
	if opts.RefreshRate <= 0 {
		opts.RefreshRate = 60
	}
	return &Round{
		screen: s,
		opts:   opts,
		source: source,
		stats:  st,
		styles: styles,
	}
}

// Run plays one round with fresh seed text. The view from the previous round
// is reused and rewrapped to the current screen width.
func (r *Round) Run() (Result, error) {
	seed := r.source.Words(r.opts.Words)
	if err := r.prepare(seed); err != nil {
		return Result{}, err
	}
	r.stats.Reset()
	r.mode = view.ModeOvertype
	r.done = false
	r.quit = false
	r.dirty = true
	logger.Info("round started", "seed_len", r.v.Len(), "lines", len(r.v.Lines()), "width", r.v.Width())

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(r.opts.RefreshRate))
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = r.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	r.screen.Clear()
	for {
		if r.dirty {
			if err := r.render(); err != nil {
				return Result{}, err
			}
			r.dirty = false
		}
		if r.done || r.quit {
			break
		}
		ev := r.screen.PollEvent()
		if ev == nil {
			r.quit = true
			break
		}
		r.handle(ev)
		for !r.done && !r.quit && r.screen.HasPendingEvent() {
			r.handle(r.screen.PollEvent())
		}
	}

	r.stats.Stop()
	if r.done {
		r.dropPendingKeys()
	}
	res := Result{Quit: r.quit}
	if !r.quit {
		r.stats.SetWPM(r.v.Len())
		res.Chars = r.v.Len()
		res.Elapsed = r.stats.Elapsed()
		res.WPM = r.stats.WPM()
		res.Accuracy = r.stats.Accuracy()
		logger.Info("round finished", "wpm", res.WPM, "accuracy", res.Accuracy, "elapsed", res.Elapsed)
	} else {
		logger.Info("round abandoned", "cursor", r.v.CursorIndex(), "len", r.v.Len())
	}
	return res, nil
}

// dropPendingKeys discards keystrokes typed after the last character so they
// do not answer the post-round prompt.
func (r *Round) dropPendingKeys() {
	dropped := 0
	for r.screen.HasPendingEvent() {
		if _, ok := r.screen.PollEvent().(*tcell.EventKey); ok {
			dropped++
		}
	}
	if dropped > 0 {
		logger.Debug("dropped keys after round end", "count", dropped)
	}
}

// View exposes the current round's view.
func (r *Round) View() *view.View {
	return r.v
}

func (r *Round) prepare(seed string) error {
	w, _ := r.screen.Size()
	if r.v != nil {
		if err := r.v.Resize(w); err != nil {
			return err
		}
		if err := r.v.Reset(seed); err != nil {
			return fmt.Errorf("reset view: %w", err)
		}
	} else {
		v, err := view.New(seed, w, r.opts.View)
		if err != nil {
			return err
		}
		r.v = v
	}
	r.surface = view.NewScreenSurface(r.screen, r.v.Width(), r.opts.View.WindowHeight, r.styles)
	return nil
}

func (r *Round) render() error {
	err := r.v.Render(r.surface)
	if errors.Is(err, view.ErrInvalidDimensions) {
		// The terminal shrank mid-round; wait for it to grow back.
		logger.Warn("screen too narrow for round", "width", r.surface.Width(), "need", r.v.Width())
		r.screen.Clear()
		r.screen.HideCursor()
		err = nil
	}
	if err != nil {
		return err
	}
	r.screen.Show()
	return nil
}

func (r *Round) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case nil:
		r.quit = true
	case *tcell.EventKey:
		r.handleKey(ev)
	case *tcell.EventResize:
		r.screen.Sync()
		r.screen.Clear()
		w, _ := r.screen.Size()
		if err := r.v.Resize(w); err != nil {
			logger.Warn("cannot rewrap for new width", "width", w, "err", err)
		}
		r.surface = view.NewScreenSurface(r.screen, r.v.Width(), r.opts.View.WindowHeight, r.styles)
		r.dirty = true
	case *tcell.EventInterrupt:
		// Tick only; nothing changed.
	}
}

func (r *Round) handleKey(ev *tcell.EventKey) {
	switch key := ev.Key(); {
	case key == tcell.KeyEscape || key == tcell.KeyCtrlC:
		r.quit = true
	case key == tcell.KeyBackspace || key == tcell.KeyBackspace2:
		r.v.DeleteChar()
		r.dirty = true
	case r.opts.InsertKey != tcell.KeyNUL && key == r.opts.InsertKey:
		if r.mode == view.ModeOvertype {
			r.mode = view.ModeInsert
		} else {
			r.mode = view.ModeOvertype
		}
		logger.Debug("typing mode toggled", "insert", r.mode == view.ModeInsert)
	case key == tcell.KeyRune:
		r.typeRune(ev.Rune())
	}
}

func (r *Round) typeRune(c rune) {
	before := r.v.CursorIndex()
	want, _ := r.v.SeedAt(before)
	correct := c == want
	tag := view.TagIncorrect
	if correct {
		tag = view.TagCorrect
	}
	r.stats.Record(correct)
	after := r.v.TypeChar(c, tag, r.mode)
	r.dirty = true
	if after == before {
		r.done = true
	}
}
