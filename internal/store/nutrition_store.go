package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/showmyfood/internal/domain"
)

// NutritionStore reads the bundled nutrition catalog. The catalog is loaded
// once at startup; the returned table is shared read-only afterwards.
type NutritionStore struct {
	db *sql.DB
}

func NewNutritionStore(db *sql.DB) *NutritionStore {
	return &NutritionStore{db: db}
}

func (s *NutritionStore) LoadTable(ctx context.Context) (*domain.NutritionTable, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, kcal_per_100g, protein, fat, carbs, notes, ingredients
		FROM dishes ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load dishes: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	table := &domain.NutritionTable{Multipliers: make(map[string]float64)}
	for rows.Next() {
		var entry domain.NutritionEntry
		var ingredients string
		if err := rows.Scan(&entry.Name, &entry.Per100g.Kcal, &entry.Per100g.Protein,
			&entry.Per100g.Fat, &entry.Per100g.Carbs, &entry.Per100g.Notes, &ingredients); err != nil {
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		entry.Ingredients = SplitList(ingredients)
		table.Dishes = append(table.Dishes, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dishes: %w", err)
	}

	if err := s.loadMultipliers(ctx, table); err != nil {
		return nil, err
	}

	return table, nil
}

func (s *NutritionStore) loadMultipliers(ctx context.Context, table *domain.NutritionTable) error {
	rows, err := s.db.QueryContext(ctx, `SELECT method, multiplier FROM cooking_methods`)
	if err != nil {
		return fmt.Errorf("failed to load cooking methods: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	for rows.Next() {
		var method string
		var multiplier float64
		if err := rows.Scan(&method, &multiplier); err != nil {
			return fmt.Errorf("failed to scan cooking method: %w", err)
		}
		table.Multipliers[method] = multiplier
	}
	return rows.Err()
}

// SplitList splits a comma-separated catalog column into trimmed elements.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
