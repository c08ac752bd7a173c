package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/sudoku-backend/internal/sudoku"
)

// PuzzleRecord is one archived generation result. Grids are stored as
// JSON text so the archive stays inspectable with plain sqlite tooling.
type PuzzleRecord struct {
	ID         int64       `json:"id"`
	Difficulty string      `json:"difficulty"`
	Puzzle     sudoku.Grid `json:"puzzle"`
	Solution   sudoku.Grid `json:"solution"`
	CreatedAt  int64       `json:"created_at"`
}

type ArchiveRepository interface {
	Save(ctx context.Context, record *PuzzleRecord) error
	ListRecent(ctx context.Context, limit int) ([]PuzzleRecord, error)
}

type dbArchive struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &dbArchive{
		conn: conn,
	}
}

func (that *dbArchive) Save(ctx context.Context, record *PuzzleRecord) error {
	puzzleJSON, err := json.Marshal(record.Puzzle)
	if err != nil {
		return fmt.Errorf("failed to marshal puzzle: %w", err)
	}

	solutionJSON, err := json.Marshal(record.Solution)
	if err != nil {
		return fmt.Errorf("failed to marshal solution: %w", err)
	}

	if record.CreatedAt == 0 {
		record.CreatedAt = time.Now().Unix()
	}

	query := `INSERT INTO puzzles (difficulty, puzzle, solution, created_at) VALUES (?, ?, ?, ?)`

	result, err := that.conn.ExecContext(ctx, query, record.Difficulty, string(puzzleJSON), string(solutionJSON), record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert puzzle: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		record.ID = id
	}

	return nil
}

func (that *dbArchive) ListRecent(ctx context.Context, limit int) ([]PuzzleRecord, error) {
	query := `SELECT id, difficulty, puzzle, solution, created_at FROM puzzles ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query puzzles: %w", err)
	}
	defer rows.Close()

	records := make([]PuzzleRecord, 0, limit)
	for rows.Next() {
		var (
			record       PuzzleRecord
			puzzleJSON   string
			solutionJSON string
		)

		if err = rows.Scan(&record.ID, &record.Difficulty, &puzzleJSON, &solutionJSON, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan puzzle row: %w", err)
		}

		if err = json.Unmarshal([]byte(puzzleJSON), &record.Puzzle); err != nil {
			return nil, fmt.Errorf("failed to unmarshal puzzle: %w", err)
		}

		if err = json.Unmarshal([]byte(solutionJSON), &record.Solution); err != nil {
			return nil, fmt.Errorf("failed to unmarshal solution: %w", err)
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate puzzle rows: %w", err)
	}

	return records, nil
}
