package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/mcoot/othello/internal/model"
	"github.com/mcoot/othello/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	state      TEXT NOT NULL,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS game_summaries (
	game_id      TEXT PRIMARY KEY,
	outcome      TEXT NOT NULL,
	black_count  INTEGER NOT NULL,
	white_count  INTEGER NOT NULL,
	move_count   INTEGER NOT NULL,
	completed_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS game_summaries_completed_at_idx ON game_summaries (completed_at DESC);
`

// Storage is a PostgreSQL-backed implementation of the storage interface
type Storage struct {
	db *sqlx.DB
}

// New connects to PostgreSQL and applies the schema
func New(url string) (*Storage, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s := NewWithDB(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing connection
func NewWithDB(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Migrate creates the tables if they do not exist
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error applying schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO games (id, state, data, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET state = EXCLUDED.state, data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`

	_, err = s.db.ExecContext(ctx, query, string(game.ID), string(game.State), data, game.UpdatedAt)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var data []byte
	err := s.db.GetContext(ctx, &data, `SELECT data FROM games WHERE id = $1`, string(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("decoding game %s: %w", id, err)
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, string(id))
	return err
}

// Summary operations

func (s *Storage) SaveSummary(ctx context.Context, summary *model.GameSummary) error {
	query := `
		INSERT INTO game_summaries (game_id, outcome, black_count, white_count, move_count, completed_at)
		VALUES (:game_id, :outcome, :black_count, :white_count, :move_count, :completed_at)
		ON CONFLICT (game_id) DO UPDATE
		SET outcome = EXCLUDED.outcome,
			black_count = EXCLUDED.black_count,
			white_count = EXCLUDED.white_count,
			move_count = EXCLUDED.move_count,
			completed_at = EXCLUDED.completed_at`

	_, err := s.db.NamedExecContext(ctx, query, summary)
	return err
}

func (s *Storage) ListSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	query := `
		SELECT game_id, outcome, black_count, white_count, move_count, completed_at
		FROM game_summaries
		ORDER BY completed_at DESC, game_id DESC`

	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	summaries := []*model.GameSummary{}
	if err := s.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, err
	}
	return summaries, nil
}
