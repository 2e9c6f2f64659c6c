package match

import (
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry tracks live and recently finished matches in memory.
type Registry struct {
	matches map[string]*Match
	mu      sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{matches: make(map[string]*Match)}
}

func (r *Registry) Create(player1, player2 domain.Difficulty) *Match {
	m := NewMatch(player1, player2)

	r.mu.Lock()
	r.matches[m.ID] = m
	r.mu.Unlock()

	log.Debug().Str("component", "registry").Str("match", m.ID).Msg("match registered")
	return m
}

func (r *Registry) Get(id string) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	return m, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.matches, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matches)
}

// Summary is the list-view of a match.
type Summary struct {
	ID         string            `json:"id"`
	Player1    Seat              `json:"player1"`
	Player2    Seat              `json:"player2"`
	Status     domain.GameStatus `json:"status"`
	Winner     string            `json:"winner,omitempty"`
	Reason     string            `json:"reason,omitempty"`
	MoveCount  int               `json:"moveCount"`
	CreatedAt  time.Time         `json:"createdAt"`
	FinishedAt *time.Time        `json:"finishedAt,omitempty"`
}

// List returns every tracked match, newest first.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	matches := make([]*Match, 0, len(r.matches))
	for _, m := range r.matches {
		matches = append(matches, m)
	}
	r.mu.RUnlock()

	summaries := make([]Summary, 0, len(matches))
	for _, m := range matches {
		v := m.View()
		summaries = append(summaries, Summary{
			ID:         v.ID,
			Player1:    v.Player1,
			Player2:    v.Player2,
			Status:     v.Status,
			Winner:     v.Winner,
			Reason:     v.Reason,
			MoveCount:  len(v.Moves),
			CreatedAt:  v.CreatedAt,
			FinishedAt: v.FinishedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries
}

// CleanupFinished drops matches that finished more than retention ago.
func (r *Registry) CleanupFinished(retention time.Duration, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for id, m := range r.matches {
		finishedAt := m.FinishedAt()
		if !finishedAt.IsZero() && now.Sub(finishedAt) > retention {
			delete(r.matches, id)
			count++
		}
	}

	if count > 0 {
		log.Info().Str("component", "registry").Int("removed", count).Msg("memory cleanup")
	}
	return count
}
