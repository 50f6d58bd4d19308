// Package stats tracks timing and accuracy for a typing round.
package stats

import "time"

type Stats struct {
	now     func() time.Time
	start   time.Time
	running bool
	elapsed time.Duration
	typed   int
	correct int
	wpm     float64
}

// New returns stats driven by the wall clock. A nil now uses time.Now.
func New(now func() time.Time) *Stats {
	if now == nil {
		now = time.Now
	}
	return &Stats{now: now}
}

func (s *Stats) Reset() {
	s.start = time.Time{}
	s.running = false
	s.elapsed = 0
	s.typed = 0
	s.correct = 0
	s.wpm = 0
}

func (s *Stats) Started() bool {
	return s.running || s.elapsed > 0
}

func (s *Stats) Start() {
	if s.running {
		return
	}
	s.start = s.now()
	s.running = true
}

// Stop adds the time since Start to the elapsed total.
func (s *Stats) Stop() {
	if !s.running {
		return
	}
	s.elapsed += s.now().Sub(s.start)
	s.running = false
}

// Record counts one typed character. The clock starts on the first one.
func (s *Stats) Record(correct bool) {
	if !s.Started() {
		s.Start()
	}
	s.typed++
	if correct {
		s.correct++
	}
}

// SetWPM computes words per minute for chars characters, five per word.
func (s *Stats) SetWPM(chars int) {
	minutes := s.Elapsed().Minutes()
	if minutes <= 0 {
		s.wpm = 0
		return
	}
	s.wpm = float64(chars) / 5 / minutes
}

func (s *Stats) WPM() float64 {
	return s.wpm
}

// Accuracy is the share of typed characters that were correct, in percent.
func (s *Stats) Accuracy() float64 {
	if s.typed == 0 {
		return 0
	}
	return float64(s.correct) / float64(s.typed) * 100
}

func (s *Stats) Typed() int {
	return s.typed
}

func (s *Stats) Elapsed() time.Duration {
	if s.running {
		return s.elapsed + s.now().Sub(s.start)
	}
	return s.elapsed
}
