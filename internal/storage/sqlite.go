package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db     *sql.DB
	gameID string
}

// ScoreEntry represents a single recorded survival time.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// DuelEntry is a stored duel outcome.
type DuelEntry struct {
	ID        int64
	Winner    string
	Ticks     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, gameID: GameID}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS duels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			winner TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a new score for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		gameID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game, best first.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return query(s.db, func(rows *sql.Rows) (ScoreEntry, error) {
		var e ScoreEntry
		var createdAt any
		err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt)
		e.CreatedAt = parseTime(createdAt)
		return e, err
	}, `SELECT id, game_id, score, created_at FROM scores
		WHERE game_id = ? ORDER BY score DESC LIMIT ?`, gameID, limit)
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LoadScores implements ScoreBook for the store's game.
func (s *Store) LoadScores() ([]int, error) {
	return query(s.db, func(rows *sql.Rows) (int, error) {
		var v int
		return v, rows.Scan(&v)
	}, "SELECT score FROM scores WHERE game_id = ? ORDER BY score DESC", s.gameID)
}

// SaveScores implements ScoreBook by replacing the stored list in one transaction.
func (s *Store) SaveScores(scores []int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM scores WHERE game_id = ?", s.gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	for _, v := range Sorted(scores) {
		if _, err := tx.Exec("INSERT INTO scores (game_id, score) VALUES (?, ?)", s.gameID, v); err != nil {
			return fmt.Errorf("storage: cannot save score: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit scores: %w", err)
	}
	return nil
}

// SaveDuel implements DuelRecorder.
func (s *Store) SaveDuel(result DuelResult) error {
	_, err := s.db.Exec(
		"INSERT INTO duels (winner, ticks) VALUES (?, ?)",
		result.Winner, result.Ticks,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save duel: %w", err)
	}
	return nil
}

// RecentDuels returns the most recent duel results, newest first.
func (s *Store) RecentDuels(limit int) ([]DuelEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return query(s.db, func(rows *sql.Rows) (DuelEntry, error) {
		var e DuelEntry
		var createdAt any
		err := rows.Scan(&e.ID, &e.Winner, &e.Ticks, &createdAt)
		e.CreatedAt = parseTime(createdAt)
		return e, err
	}, "SELECT id, winner, ticks, created_at FROM duels ORDER BY id DESC LIMIT ?", limit)
}

type winCount struct {
	winner string
	n      int
}

// DuelWins counts duel victories per winner.
func (s *Store) DuelWins() (map[string]int, error) {
	counts, err := query(s.db, func(rows *sql.Rows) (winCount, error) {
		var c winCount
		return c, rows.Scan(&c.winner, &c.n)
	}, "SELECT winner, COUNT(*) FROM duels GROUP BY winner")
	if err != nil {
		return nil, err
	}

	wins := make(map[string]int, len(counts))
	for _, c := range counts {
		wins[c.winner] = c.n
	}
	return wins, nil
}

// query runs a SELECT and scans every row with scan.
func query[T any](db *sql.DB, scan func(*sql.Rows) (T, error), stmt string, args ...any) ([]T, error) {
	rows, err := db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: query failed: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

var (
	_ ScoreBook    = (*Store)(nil)
	_ DuelRecorder = (*Store)(nil)
)
