package games

import (
	"math/rand"
	"strconv"
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func newTestCoinCounter(c *fakeClock) *CoinCounter {
	return NewCoinCounter(nil, newTestRand(), c.Now)
}

func TestCoinCounter_clearAllLevels(t *testing.T) {
	clock := newFakeClock()
	g := newTestCoinCounter(clock)

	wantScore := 0
	for level := 1; level <= CoinCounterMaxLevel; level++ {
		if g.Level() != level {
			t.Fatalf("Level() = %d, want %d", g.Level(), level)
		}
		for _, p := range g.View().Piles {
			if p.Count < 1 || p.Count > level+1 {
				t.Errorf("level %d: pile of %d %s out of range", level, p.Count, p.Name)
			}
		}

		res, err := g.Answer(" " + strconv.Itoa(g.Total()) + " ")
		if err != nil {
			t.Fatalf("Answer() unexpected error = %v", err)
		}
		wantScore += level * 2
		if !res.Correct || res.Points != level*2 {
			t.Errorf("Answer() at level %d = %+v", level, res)
		}
		clock.Advance(time.Second)
	}

	if !g.Over() {
		t.Errorf("Over() = false after clearing level %d", CoinCounterMaxLevel)
	}
	if g.Score() != wantScore || wantScore != 30 {
		t.Errorf("Score() = %d, want %d", g.Score(), wantScore)
	}
	if _, err := g.Answer("1"); err != ErrGameOver {
		t.Errorf("Answer() after game over error = %v, want %v", err, ErrGameOver)
	}
}

func TestCoinCounter_wrongAnswers(t *testing.T) {
	g := newTestCoinCounter(newFakeClock())

	tests := []struct {
		name   string
		answer func() string
	}{
		{name: "off by one", answer: func() string { return strconv.Itoa(g.Total() + 1) }},
		{name: "not a number", answer: func() string { return "twelve" }},
		{name: "empty", answer: func() string { return "" }},
		{name: "decimal", answer: func() string { return strconv.Itoa(g.Total()) + ".5" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := g.Total()
			res, err := g.Answer(tt.answer())
			if err != nil {
				t.Fatalf("Answer() unexpected error = %v", err)
			}
			if res.Correct || res.Points != 0 || res.Expected != expected {
				t.Errorf("Answer() = %+v, want incorrect with expected %d", res, expected)
			}
			if g.Level() != 1 || g.Score() != 0 || g.Over() {
				t.Errorf("state after wrong answer: level %d, score %d, over %v", g.Level(), g.Score(), g.Over())
			}
		})
	}
}

func TestCoinCounter_timeLimit(t *testing.T) {
	clock := newFakeClock()
	g := newTestCoinCounter(clock)
	_, _ = g.Answer(strconv.Itoa(g.Total()))

	clock.Advance(CoinCounterTimeLimit + time.Millisecond)
	res, err := g.Answer(strconv.Itoa(g.Total()))
	if err != nil {
		t.Fatalf("Answer() unexpected error = %v", err)
	}
	if !res.TimedOut || res.Correct || res.Points != 0 {
		t.Errorf("Answer() after deadline = %+v, want timed out", res)
	}
	if !g.Over() || g.Score() != 2 {
		t.Errorf("Over() = %v, Score() = %d; want true, 2", g.Over(), g.Score())
	}
}

func TestCoinCounter_endsWithoutAnswer(t *testing.T) {
	clock := newFakeClock()
	g := newTestCoinCounter(clock)

	clock.Advance(CoinCounterTimeLimit)
	if g.Over() {
		t.Errorf("Over() = true at the deadline")
	}
	clock.Advance(time.Millisecond)
	if !g.Over() || !g.View().Over {
		t.Errorf("Over() = %v, View().Over = %v; want true after the deadline", g.Over(), g.View().Over)
	}
}
