package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/jankey/internal/config"
	"github.com/kobzarvs/jankey/internal/history"
	"github.com/kobzarvs/jankey/internal/logger"
	"github.com/kobzarvs/jankey/internal/modal"
	"github.com/kobzarvs/jankey/internal/round"
	"github.com/kobzarvs/jankey/internal/stats"
	"github.com/kobzarvs/jankey/internal/wordstore"
)

// Options are the command-line overrides.
type Options struct {
	Debug bool
	Words int
	Dict  string
}

type state int

const (
	stateRunning state = iota
	statePostRound
	stateQuitting
)

// App is the top-level runtime for jankey.
type App struct {
	opts Options
	now  func() time.Time
}

func New(opts Options) *App {
	return &App{opts: opts, now: time.Now}
}

func (a *App) Run() error {
	if err := logger.Init(a.opts.Debug); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "err", err)
		return fmt.Errorf("load config: %w", err)
	}
	a.applyOverrides(&cfg)

	store, err := wordstore.Load(cfg.Round.Dictionary, nil)
	if err != nil {
		logger.Error("dictionary load failed", "path", cfg.Round.Dictionary, "err", err)
		return err
	}
	logger.Info("dictionary loaded", "words", store.Count(), "path", cfg.Round.Dictionary)

	hist, err := history.NewManager()
	if err != nil {
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	err = a.runOn(s, cfg, store, hist)
	if err != nil {
		logger.Error("fatal", "err", err)
	}
	return err
}

func (a *App) applyOverrides(cfg *config.Config) {
	if a.opts.Words > 0 {
		cfg.Round.Words = a.opts.Words
	}
	if a.opts.Dict != "" {
		cfg.Round.Dictionary = a.opts.Dict
	}
}

// runOn drives rounds and the post-round modal until the player quits.
func (a *App) runOn(s tcell.Screen, cfg config.Config, src round.Source, hist *history.Manager) error {
	st := stats.New(a.now)
	r := round.New(s, round.Options{
		View:        viewOptions(cfg.Round),
		Words:       cfg.Round.Words,
		RefreshRate: cfg.Round.RefreshRate,
		InsertKey:   insertKey(cfg.Round.InsertKey),
	}, src, st, viewStyles(cfg.Theme))
	ms := modalStyles(cfg.Theme)

	var last round.Result
	current := stateRunning
	for current != stateQuitting {
		switch current {
		case stateRunning:
			res, err := r.Run()
			if err != nil {
				return err
			}
			if res.Quit {
				current = stateQuitting
				continue
			}
			last = res
			hist.Record(history.Result{
				Finished: a.now(),
				Elapsed:  res.Elapsed,
				WPM:      res.WPM,
				Accuracy: res.Accuracy,
				Chars:    res.Chars,
			})
			if err := hist.Save(); err != nil {
				logger.Warn("history save failed", "err", err)
			}
			current = statePostRound
		case statePostRound:
			sum := modal.Summary{Elapsed: last.Elapsed, WPM: last.WPM, Accuracy: last.Accuracy}
			if best, ok := hist.Best(); ok {
				sum.BestWPM = best.WPM
				sum.HasBest = true
			}
			for _, r := range hist.Recent(3) {
				sum.Recent = append(sum.Recent, r.WPM)
			}
			if modal.Run(s, sum, ms) == modal.ChoiceNew {
				current = stateRunning
			} else {
				current = stateQuitting
			}
		}
	}
	logger.Info("quitting")
	return nil
}
