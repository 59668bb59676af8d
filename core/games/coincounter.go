package games

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	CoinCounterMaxLevel  = 5
	CoinCounterTimeLimit = 30 * time.Second
)

type (
	// CoinPile is a number of coins of one denomination.
	CoinPile struct {
		Coin
		Count int `json:"count"`
	}

	// CoinCounter asks the player for the total value of a random pile of coins.
	// Each correct answer is worth level*2 points and moves to the next level;
	// the game ends once the last level is cleared or the time limit runs out.
	CoinCounter struct {
		coins    []Coin
		rng      *rand.Rand
		nowFunc  func() time.Time
		level    int
		score    int
		piles    []CoinPile
		deadline time.Time
		over     bool
	}

	CoinAnswer struct {
		Correct  bool `json:"correct"`
		Expected int  `json:"expected"`
		Points   int  `json:"points"`
		TimedOut bool `json:"timed_out"`
	}

	CoinCounterView struct {
		Level    int        `json:"level"`
		Score    int        `json:"score"`
		Piles    []CoinPile `json:"piles"`
		Deadline time.Time  `json:"deadline"`
		Over     bool       `json:"over"`
	}
)

func NewCoinCounter(content *Content, rng *rand.Rand, now func() time.Time) *CoinCounter {
	if content == nil {
		content = DefaultContent()
	}
	if now == nil {
		now = time.Now
	}
	g := &CoinCounter{
		coins:    content.Coins,
		rng:      rng,
		nowFunc:  now,
		level:    1,
		deadline: now().Add(CoinCounterTimeLimit),
	}
	g.deal()
	return g
}

func (g *CoinCounter) Kind() Kind { return KindCoinCounter }
func (g *CoinCounter) Score() int { return g.score }

// Over reports whether the last level was cleared or the time limit ran out.
func (g *CoinCounter) Over() bool { return g.over || g.expired() }

func (g *CoinCounter) expired() bool { return g.nowFunc().After(g.deadline) }

func (g *CoinCounter) Level() int { return g.level }

// Total is the value in cents of the current pile.
func (g *CoinCounter) Total() int {
	var total int
	for _, p := range g.piles {
		total += p.Value * p.Count
	}
	return total
}

func (g *CoinCounter) View() CoinCounterView {
	piles := make([]CoinPile, len(g.piles))
	copy(piles, g.piles)
	return CoinCounterView{Level: g.level, Score: g.score, Piles: piles, Deadline: g.deadline, Over: g.Over()}
}

// deal draws rand[0, level+2) coins of every denomination, dropping empty piles.
func (g *CoinCounter) deal() {
	for {
		g.piles = g.piles[:0]
		for _, c := range g.coins {
			if n := g.rng.Intn(g.level + 2); n > 0 {
				g.piles = append(g.piles, CoinPile{Coin: c, Count: n})
			}
		}
		if len(g.piles) > 0 {
			return
		}
	}
}

// Answer checks the player's answer. Anything that is not a whole number is a wrong answer.
func (g *CoinCounter) Answer(raw string) (CoinAnswer, error) {
	if g.over {
		return CoinAnswer{}, ErrGameOver
	}
	expected := g.Total()
	if g.expired() {
		g.over = true
		return CoinAnswer{Expected: expected, TimedOut: true}, nil
	}

	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value != expected {
		g.deal()
		return CoinAnswer{Expected: expected}, nil
	}

	points := g.level * 2
	g.score += points
	if g.level >= CoinCounterMaxLevel {
		g.over = true
	} else {
		g.level++
		g.deal()
	}
	return CoinAnswer{Correct: true, Expected: expected, Points: points}, nil
}
