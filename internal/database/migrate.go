package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Migrate создает таблицы, если их еще нет.
func Migrate(ctx context.Context, q Queryable) error {
	if _, err := q.ExecRaw(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	return nil
}
