package games

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type (
	// CompletionFunc receives the final score of a game once it is over.
	CompletionFunc func(userID string, kind Kind, score int)

	Session struct {
		ID        string    `json:"id"`
		UserID    string    `json:"-"`
		Kind      Kind      `json:"kind"`
		StartedAt time.Time `json:"started_at"`
		Game      Game      `json:"-"`
	}

	// Registry keeps the games in progress, each owned by one user.
	Registry struct {
		onComplete CompletionFunc
		nowFunc    func() time.Time
		newIDFunc  func() string

		mu       sync.Mutex
		sessions map[string]*Session
	}
)

func NewRegistry(onComplete CompletionFunc) *Registry {
	if onComplete == nil {
		onComplete = func(string, Kind, int) {}
	}
	return &Registry{
		onComplete: onComplete,
		nowFunc:    time.Now,
		newIDFunc:  uuid.NewString,
		sessions:   make(map[string]*Session),
	}
}

// Start registers a new game for userID.
func (r *Registry) Start(userID string, g Game) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &Session{
		ID:        r.newIDFunc(),
		UserID:    userID,
		Kind:      g.Kind(),
		StartedAt: r.nowFunc().UTC(),
		Game:      g,
	}
	r.sessions[s.ID] = s
	return s
}

func (r *Registry) get(userID, sessionID string) (*Session, error) {
	s, ok := r.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// closeOver drops the user's finished sessions and returns them.
// Timed games finish on their own, without a move from the player.
// The caller must hold r.mu.
func (r *Registry) closeOver(userID string) []*Session {
	var over []*Session
	for id, s := range r.sessions {
		if s.UserID == userID && s.Game.Over() {
			delete(r.sessions, id)
			over = append(over, s)
		}
	}
	sort.Slice(over, func(i, j int) bool { return over[i].StartedAt.Before(over[j].StartedAt) })
	return over
}

func (r *Registry) complete(sessions []*Session) {
	for _, s := range sessions {
		r.onComplete(s.UserID, s.Kind, s.Game.Score())
	}
}

// Play runs fn against the user's game. Once the game is over its score is handed to
// the completion callback and the session is dropped.
func (r *Registry) Play(userID, sessionID string, fn func(g Game) error) (*Session, error) {
	r.mu.Lock()
	s, err := r.get(userID, sessionID)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	if err = fn(s.Game); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	over := r.closeOver(userID)
	r.mu.Unlock()

	r.complete(over)
	return s, nil
}

// Sessions returns the user's games in progress, oldest first.
// Games found over are closed and credited first.
func (r *Registry) Sessions(userID string) []*Session {
	r.mu.Lock()
	over := r.closeOver(userID)
	var out []*Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	r.mu.Unlock()

	r.complete(over)
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

// Abandon drops a game without crediting its score.
// A game that already ended on its own is credited instead.
func (r *Registry) Abandon(userID, sessionID string) error {
	r.mu.Lock()
	if _, err := r.get(userID, sessionID); err != nil {
		r.mu.Unlock()
		return err
	}
	over := r.closeOver(userID)
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	r.complete(over)
	return nil
}
