package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/showmyfood/internal/domain"
)

// FactStore reads the bundled fact catalog: dish-specific groups plus the
// dish-agnostic fallback set.
type FactStore struct {
	db *sql.DB
}

func NewFactStore(db *sql.DB) *FactStore {
	return &FactStore{db: db}
}

func (s *FactStore) LoadTable(ctx context.Context) (*domain.FactTable, error) {
	groups, err := s.loadGroups(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT group_id, kind, text, sources, verified, confidence
		FROM facts ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load facts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	table := &domain.FactTable{}
	for rows.Next() {
		var groupID sql.NullInt64
		var kind, sources string
		fact := domain.DishFact{}
		if err := rows.Scan(&groupID, &kind, &fact.Text, &sources, &fact.Verified, &fact.Confidence); err != nil {
			return nil, fmt.Errorf("failed to scan fact: %w", err)
		}
		fact.Kind = domain.FactKind(kind)
		fact.Sources = splitSources(sources)

		if !groupID.Valid {
			table.Fallback = append(table.Fallback, fact)
			continue
		}
		group, ok := groups[groupID.Int64]
		if !ok {
			slog.Warn("fact references unknown group", "group_id", groupID.Int64)
			continue
		}
		group.Facts = append(group.Facts, fact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate facts: %w", err)
	}

	for _, g := range groups {
		if len(g.Facts) > 0 {
			table.Groups = append(table.Groups, *g)
		}
	}
	return table, nil
}

func (s *FactStore) loadGroups(ctx context.Context) (map[int64]*domain.FactGroup, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, dish_names, ingredients FROM fact_groups ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load fact groups: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	groups := make(map[int64]*domain.FactGroup)
	for rows.Next() {
		var id int64
		var dishNames, ingredients string
		if err := rows.Scan(&id, &dishNames, &ingredients); err != nil {
			return nil, fmt.Errorf("failed to scan fact group: %w", err)
		}
		groups[id] = &domain.FactGroup{
			DishNames:   SplitList(dishNames),
			Ingredients: SplitList(ingredients),
		}
	}
	return groups, rows.Err()
}

// Source URLs are separated with ';' because URLs may legitimately contain commas.
func splitSources(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
