package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ApplyScript executes a generated seed script on a single connection of db. The script carries
// its own BEGIN/COMMIT; when any statement fails, including the abort blocks emitted for
// unmatched ingredients, the open transaction is rolled back before the error is returned.
func ApplyScript(ctx context.Context, logger *zap.SugaredLogger, db *sql.DB, script string) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("apply: acquiring connection: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warnf("apply: closing connection: %v", err)
		}
	}()

	if _, execErr := conn.ExecContext(ctx, script); execErr != nil {
		if _, rbErr := conn.ExecContext(ctx, "ROLLBACK"); rbErr != nil {
			return errors.Join(fmt.Errorf("apply: executing script: %w", execErr), fmt.Errorf("apply: rollback: %w", rbErr))
		}
		logger.Warnf("apply: script failed, transaction rolled back")
		return fmt.Errorf("apply: executing script: %w", execErr)
	}
	return nil
}
