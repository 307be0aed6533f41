package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testScript = `BEGIN;
INSERT INTO cocktails (slug, name, glass, category, garnish, preparation, image_url)
VALUES ('martini', 'Martini', NULL, NULL, NULL, NULL, NULL);
COMMIT;
`

func TestApplyScript(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("executes the script once", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer sqlDB.Close()

		mock.ExpectExec(testScript).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, ApplyScript(context.Background(), log, sqlDB, testScript))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the script fails", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer sqlDB.Close()

		raised := errors.New("Base ingredient not found: Unobtainium Bitters (used in: Mystery Fizz)")
		mock.ExpectExec(testScript).WillReturnError(raised)
		mock.ExpectExec("ROLLBACK").WillReturnResult(sqlmock.NewResult(0, 0))

		err = ApplyScript(context.Background(), log, sqlDB, testScript)
		require.Error(t, err)
		assert.ErrorIs(t, err, raised)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a failed rollback too", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer sqlDB.Close()

		raised := errors.New("syntax error")
		rbErr := errors.New("connection reset")
		mock.ExpectExec(testScript).WillReturnError(raised)
		mock.ExpectExec("ROLLBACK").WillReturnError(rbErr)

		err = ApplyScript(context.Background(), log, sqlDB, testScript)
		require.Error(t, err)
		assert.ErrorIs(t, err, raised)
		assert.ErrorIs(t, err, rbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
