// Package games implements the scoring rules of the educational mini-games.
// Points earned here are a reward currency of their own and never touch savings.
package games

import (
	"errors"
	"math/rand"
	"time"
)

var (
	ErrBudgetMismatch  = errors.New("budget total does not match income")
	ErrSessionNotFound = errors.New("game session not found")
	ErrGameOver        = errors.New("game is over")
	ErrOutOfTurn       = errors.New("action not allowed at this stage of the game")
	ErrQuizNotFound    = errors.New("quiz not found")
)

// Kind identifies a mini-game.
type Kind string

const (
	KindCoinCounter   Kind = "coin-counter"
	KindBudgetBuilder Kind = "budget-builder"
	KindSavingsSprint Kind = "savings-sprint"
)

// Game is a single round of a mini-game.
type Game interface {
	Kind() Kind
	Score() int
	Over() bool
}

// NewRand returns a random source seeded from the clock.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
