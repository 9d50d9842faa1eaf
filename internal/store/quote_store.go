package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/showmyfood/internal/domain"
)

// QuoteStore reads the canned photography-master quotes used by the
// composition-advice flow.
type QuoteStore struct {
	db *sql.DB
}

func NewQuoteStore(db *sql.DB) *QuoteStore {
	return &QuoteStore{db: db}
}

func (s *QuoteStore) LoadQuotes(ctx context.Context) ([]domain.Quote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, text, author, profession, context FROM quotes ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var quotes []domain.Quote
	for rows.Next() {
		var q domain.Quote
		if err := rows.Scan(&q.Category, &q.Text, &q.Author, &q.Profession, &q.Context); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}
