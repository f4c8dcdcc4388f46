package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/models"
	repository "github.com/savedate/save-date/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertRepository(t *testing.T) {
	ctx := t.Context()
	tenantID := uuid.New()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("GetAlertByID", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewAlertRepo(db)
		id, productID, logID := uuid.New(), uuid.New(), uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "product_id", "print_log_id", "alert_date", "status", "quantity", "lot_number", "created_at", "updated_at"}).
			AddRow(id, tenantID, productID, logID, now.AddDate(0, 0, 3), "pending", 5, "L1", now, now)

		mock.ExpectQuery(regexp.QuoteMeta("FROM alerts")).
			WithArgs(id, tenantID).
			WillReturnRows(rows)

		// Act
		alert, err := repo.GetAlertByID(ctx, tenantID, id)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.AlertStatusPending, alert.Status)
		assert.Equal(t, logID, alert.PrintLogID)
		assert.Equal(t, now.AddDate(0, 0, 3), alert.AlertDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetAlertByID_NotFound", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewAlertRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM alerts")).WillReturnError(sql.ErrNoRows)

		// Act
		alert, err := repo.GetAlertByID(ctx, tenantID, uuid.New())

		// Assert
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, alert)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("TransitionPendingAlert", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewAlertRepo(db)
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("WHERE id = $3 AND tenant_id = $4 AND status = 'pending'")).
			WithArgs("discarded", now, id, tenantID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.TransitionPendingAlert(ctx, tenantID, id, models.AlertStatusDiscarded, now)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("TransitionPendingAlert_NoPendingRow", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewAlertRepo(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE alerts SET status")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.TransitionPendingAlert(ctx, tenantID, uuid.New(), models.AlertStatusResolved, now)

		// Assert
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteAlert", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewAlertRepo(db)
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM alerts WHERE id = $1 AND tenant_id = $2")).
			WithArgs(id, tenantID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.DeleteAlert(ctx, tenantID, id)

		// Assert
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListPendingAlerts", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewAlertRepo(db)

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "product_id", "print_log_id", "alert_date", "status", "quantity", "lot_number", "created_at", "updated_at", "name"}).
			AddRow(uuid.New(), tenantID, uuid.New(), uuid.New(), now.AddDate(0, 0, 1), "pending", 2, "A", now, now, "Sauce").
			AddRow(uuid.New(), tenantID, uuid.New(), uuid.New(), now.AddDate(0, 0, 5), "pending", 1, "B", now, now, "Rice")

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY a.alert_date ASC")).
			WithArgs(tenantID).
			WillReturnRows(rows)

		// Act
		alerts, err := repo.ListPendingAlerts(ctx, tenantID)

		// Assert
		require.NoError(t, err)
		require.Len(t, alerts, 2)
		assert.Equal(t, "Sauce", alerts[0].ProductName)
		assert.Equal(t, "B", alerts[1].LotNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
