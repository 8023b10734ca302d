package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/01moynul/plantsy-golang/internal/config"
	"github.com/01moynul/plantsy-golang/internal/database"
	"github.com/01moynul/plantsy-golang/internal/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteStore(t *testing.T) *SQLPlantStore {
	t.Helper()

	db, dialect, err := database.OpenDB(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewSQLPlantStore(db, dialect)
}

func setupMockStore(t *testing.T, driver string) (*SQLPlantStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dialect, err := database.DialectFor(driver)
	require.NoError(t, err)

	return NewSQLPlantStore(db, dialect), mock
}

func TestSQLPlantStore_SQLite(t *testing.T) {
	ctx := context.Background()

	t.Run("list is empty on a fresh table", func(t *testing.T) {
		s := setupSQLiteStore(t)

		plants, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, plants)
		assert.Empty(t, plants)
	})

	t.Run("create assigns ids and get returns the record", func(t *testing.T) {
		s := setupSQLiteStore(t)

		aloe := &models.Plant{Name: "Aloe", Image: "aloe.jpg", Price: 10.0, IsInStock: true}
		require.NoError(t, s.Create(ctx, aloe))
		assert.Equal(t, int64(1), aloe.ID)

		zz := &models.Plant{Name: "ZZ Plant", Image: "zz.jpg", Price: 25.98}
		require.NoError(t, s.Create(ctx, zz))
		assert.Equal(t, int64(2), zz.ID)

		got, err := s.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, *aloe, *got)

		plants, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Plant{*aloe, *zz}, plants)
	})

	t.Run("get missing id", func(t *testing.T) {
		s := setupSQLiteStore(t)

		_, err := s.GetByID(ctx, 999999)
		assert.True(t, errors.Is(err, ErrPlantNotFound))
	})

	t.Run("update stock touches only is_in_stock", func(t *testing.T) {
		s := setupSQLiteStore(t)

		p := &models.Plant{Name: "Aloe", Image: "aloe.jpg", Price: 10.0, IsInStock: true}
		require.NoError(t, s.Create(ctx, p))

		require.NoError(t, s.UpdateStock(ctx, p.ID, false))
		// Same value again is not an error.
		require.NoError(t, s.UpdateStock(ctx, p.ID, false))

		got, err := s.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, got.IsInStock)
		assert.Equal(t, "Aloe", got.Name)
		assert.Equal(t, "aloe.jpg", got.Image)
		assert.Equal(t, 10.0, got.Price)

		assert.True(t, errors.Is(s.UpdateStock(ctx, 999999, true), ErrPlantNotFound))
	})

	t.Run("delete removes the row and ids are never reused", func(t *testing.T) {
		s := setupSQLiteStore(t)

		first := &models.Plant{Name: "Live Oak", Image: "oak.jpg", Price: 250.0}
		require.NoError(t, s.Create(ctx, first))
		require.NoError(t, s.Delete(ctx, first.ID))

		_, err := s.GetByID(ctx, first.ID)
		assert.True(t, errors.Is(err, ErrPlantNotFound))
		assert.True(t, errors.Is(s.Delete(ctx, first.ID), ErrPlantNotFound))

		second := &models.Plant{Name: "Fern", Image: "fern.jpg", Price: 5.0}
		require.NoError(t, s.Create(ctx, second))
		assert.Greater(t, second.ID, first.ID)
	})
}

func TestSQLPlantStore_MySQL(t *testing.T) {
	ctx := context.Background()

	t.Run("create uses LastInsertId", func(t *testing.T) {
		s, mock := setupMockStore(t, config.DriverMySQL)

		mock.ExpectExec(`INSERT INTO plant \(name, image, price, is_in_stock\) VALUES \(\?, \?, \?, \?\)`).
			WithArgs("Aloe", "aloe.jpg", 10.0, false).
			WillReturnResult(sqlmock.NewResult(7, 1))

		p := &models.Plant{Name: "Aloe", Image: "aloe.jpg", Price: 10.0}
		require.NoError(t, s.Create(ctx, p))
		assert.Equal(t, int64(7), p.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unchanged update is not treated as missing", func(t *testing.T) {
		s, mock := setupMockStore(t, config.DriverMySQL)

		mock.ExpectExec(`UPDATE plant SET is_in_stock = \? WHERE id = \?`).
			WithArgs(true, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT 1 FROM plant WHERE id = \?`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

		require.NoError(t, s.UpdateStock(ctx, 3, true))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update of a missing row", func(t *testing.T) {
		s, mock := setupMockStore(t, config.DriverMySQL)

		mock.ExpectExec(`UPDATE plant SET is_in_stock`).
			WithArgs(false, int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT 1 FROM plant WHERE id = \?`).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}))

		assert.True(t, errors.Is(s.UpdateStock(ctx, 4, false), ErrPlantNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query errors are wrapped", func(t *testing.T) {
		s, mock := setupMockStore(t, config.DriverMySQL)

		boom := errors.New("connection reset")
		mock.ExpectQuery(`SELECT id, name, image, price, is_in_stock FROM plant WHERE id = \?`).
			WithArgs(int64(1)).
			WillReturnError(boom)

		_, err := s.GetByID(ctx, 1)
		assert.True(t, errors.Is(err, boom))
		assert.False(t, errors.Is(err, ErrPlantNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLPlantStore_Postgres(t *testing.T) {
	ctx := context.Background()

	t.Run("create uses RETURNING with numbered placeholders", func(t *testing.T) {
		s, mock := setupMockStore(t, config.DriverPostgres)

		mock.ExpectQuery(`INSERT INTO plant \(name, image, price, is_in_stock\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING id`).
			WithArgs("Aloe", "aloe.jpg", 10.0, true).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		p := &models.Plant{Name: "Aloe", Image: "aloe.jpg", Price: 10.0, IsInStock: true}
		require.NoError(t, s.Create(ctx, p))
		assert.Equal(t, int64(42), p.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete rebinds placeholders", func(t *testing.T) {
		s, mock := setupMockStore(t, config.DriverPostgres)

		mock.ExpectExec(`DELETE FROM plant WHERE id = \$1`).
			WithArgs(int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Delete(ctx, 9))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get missing id", func(t *testing.T) {
		s, mock := setupMockStore(t, config.DriverPostgres)

		mock.ExpectQuery(`SELECT id, name, image, price, is_in_stock FROM plant WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(ctx, 5)
		assert.True(t, errors.Is(err, ErrPlantNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
