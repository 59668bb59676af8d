package games

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

type (
	// PointsRepository persists a user's reward points.
	// LoadPoints returns zero Points for users without saved data.
	PointsRepository interface {
		LoadPoints(userID string) (Points, error)
		SavePoints(userID string, p Points) error
	}

	// Points is a user's reward point balance, kept apart from their savings.
	Points struct {
		Total       int          `json:"total"`
		GamesPlayed int          `json:"games_played"`
		BestScores  map[Kind]int `json:"best_scores"`
		LastPlayed  *time.Time   `json:"last_played,omitempty"`
	}

	// PointsLedger credits the final score of completed games.
	PointsLedger struct {
		repo    PointsRepository
		nowFunc func() time.Time
		mu      sync.Mutex
	}
)

func NewPointsLedger(repo PointsRepository) *PointsLedger {
	return &PointsLedger{repo: repo, nowFunc: time.Now}
}

func (l *PointsLedger) Points(userID string) (Points, error) {
	p, err := l.repo.LoadPoints(userID)
	if err != nil {
		return Points{}, errors.Wrap(err, "loading points")
	}
	return p, nil
}

// Credit adds the score of a completed game to the user's balance.
func (l *PointsLedger) Credit(userID string, kind Kind, score int) (Points, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.repo.LoadPoints(userID)
	if err != nil {
		return Points{}, errors.Wrap(err, "loading points")
	}
	if p.BestScores == nil {
		p.BestScores = make(map[Kind]int)
	}
	if score > 0 {
		p.Total += score
	}
	p.GamesPlayed++
	if score > p.BestScores[kind] {
		p.BestScores[kind] = score
	}
	now := l.nowFunc().UTC()
	p.LastPlayed = &now

	if err = l.repo.SavePoints(userID, p); err != nil {
		return Points{}, errors.Wrap(err, "saving points")
	}
	return p, nil
}
