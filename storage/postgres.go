package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
)

// PostgresWordSource reads round words out of a pre-seeded word pool.
type PostgresWordSource struct {
	pool *pgxpool.Pool
}

func NewPostgresWordSource(ctx context.Context, connString string) (*PostgresWordSource, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresWordSource{pool: pool}, nil
}

func (s *PostgresWordSource) Close() {
	s.pool.Close()
}

func (s *PostgresWordSource) FetchWords(ctx context.Context, theme string, count int) ([]string, error) {
	query := `SELECT word FROM words WHERE theme = $1 ORDER BY RANDOM() LIMIT $2`

	rows, err := s.pool.Query(ctx, query, theme, count)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedStorageError, err)
	}
	defer rows.Close()

	words := make([]string, 0, count)
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.UnexpectedStorageError, err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedStorageError, err)
	}

	return words, nil
}
