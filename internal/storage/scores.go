// Package storage persists single-player survival times and duel results.
//
// Two backends exist: a SQLite database (Store) and a per-user data file
// managed through gdata (FileBook). Both satisfy ScoreBook.
package storage

import (
	"slices"
	"sync"
)

// GameID is the key single-player scores are stored under.
const GameID = "tin"

// ScoreBook loads and saves the list of single-player scores in seconds.
// Lists are kept sorted from best (longest) to worst.
type ScoreBook interface {
	LoadScores() ([]int, error)
	SaveScores(scores []int) error
}

// DuelRecorder records the outcome of a two-player match.
type DuelRecorder interface {
	SaveDuel(result DuelResult) error
}

// DuelResult is the outcome of a finished duel.
type DuelResult struct {
	Winner string // "tin" or "sin"
	Ticks  int
}

// Insert adds score to scores unless the same value is already present.
// The returned list is sorted descending; the input is not modified.
func Insert(scores []int, score int) ([]int, bool) {
	if slices.Contains(scores, score) {
		return Sorted(scores), false
	}
	out := make([]int, 0, len(scores)+1)
	out = append(out, scores...)
	out = append(out, score)
	return Sorted(out), true
}

// Sorted returns a descending copy of scores.
func Sorted(scores []int) []int {
	out := slices.Clone(scores)
	slices.SortFunc(out, func(a, b int) int { return b - a })
	return out
}

// Top returns at most n of the best scores.
func Top(scores []int, n int) []int {
	sorted := Sorted(scores)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// MemoryBook is an in-process ScoreBook used when no persistence is configured.
type MemoryBook struct {
	mu     sync.Mutex
	scores []int
	duels  []DuelResult
}

// NewMemoryBook returns an empty in-memory book.
func NewMemoryBook() *MemoryBook {
	return &MemoryBook{}
}

// LoadScores implements ScoreBook.
func (m *MemoryBook) LoadScores() ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.scores), nil
}

// SaveScores implements ScoreBook.
func (m *MemoryBook) SaveScores(scores []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = Sorted(scores)
	return nil
}

// SaveDuel implements DuelRecorder.
func (m *MemoryBook) SaveDuel(result DuelResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duels = append(m.duels, result)
	return nil
}

// Duels returns the recorded duel results in order.
func (m *MemoryBook) Duels() []DuelResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.duels)
}

var (
	_ ScoreBook    = (*MemoryBook)(nil)
	_ DuelRecorder = (*MemoryBook)(nil)
)
