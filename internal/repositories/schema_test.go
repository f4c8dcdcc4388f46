package repository

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSchema(t *testing.T) {

	t.Run("Applies Every Statement In One Transaction", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		mock.ExpectBegin()
		for _, stmt := range schemaStatements {
			mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectCommit()

		// Act
		err = InitSchema(t.Context(), db)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls Back On Failure", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS tenants")).WillReturnError(errors.New("permission denied"))
		mock.ExpectRollback()

		// Act
		err = InitSchema(t.Context(), db)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to apply schema")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
