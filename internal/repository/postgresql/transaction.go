package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// GetQuerier returns either transaction or pool
// Used in repositories to support both transactional and non-transactional operations
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}

// mapNoRows turns pgx.ErrNoRows into the domain's not-found error.
func mapNoRows(err, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}
