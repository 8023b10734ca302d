package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/01moynul/plantsy-golang/internal/database"
	"github.com/01moynul/plantsy-golang/internal/models"
)

var ErrPlantNotFound = errors.New("plant not found")

// PlantStore persists plants in a single table.
type PlantStore interface {
	List(ctx context.Context) ([]models.Plant, error)
	Create(ctx context.Context, p *models.Plant) error
	GetByID(ctx context.Context, id int64) (*models.Plant, error)
	UpdateStock(ctx context.Context, id int64, inStock bool) error
	Delete(ctx context.Context, id int64) error
}

// SQLPlantStore is a PlantStore on top of database/sql.
type SQLPlantStore struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLPlantStore(db *sql.DB, dialect database.Dialect) *SQLPlantStore {
	return &SQLPlantStore{db: db, dialect: dialect}
}

// List returns every plant ordered by id. The slice is empty, not nil, when
// the table has no rows.
func (s *SQLPlantStore) List(ctx context.Context) ([]models.Plant, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, image, price, is_in_stock FROM plant ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer rows.Close()

	plants := make([]models.Plant, 0)
	for rows.Next() {
		var p models.Plant
		if err := rows.Scan(&p.ID, &p.Name, &p.Image, &p.Price, &p.IsInStock); err != nil {
			return nil, fmt.Errorf("scan plant row: %w", err)
		}
		plants = append(plants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plant rows: %w", err)
	}

	return plants, nil
}

// Create inserts p and sets p.ID to the assigned key. Input is assumed valid.
func (s *SQLPlantStore) Create(ctx context.Context, p *models.Plant) error {
	query := `INSERT INTO plant (name, image, price, is_in_stock) VALUES (?, ?, ?, ?)`
	args := []interface{}{p.Name, p.Image, p.Price, p.IsInStock}

	if s.dialect.ReturningID {
		err := s.db.QueryRowContext(ctx, s.dialect.Rebind(query+" RETURNING id"), args...).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("insert plant: %w", err)
		}
		return nil
	}

	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("insert plant: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("read new plant id: %w", err)
	}
	p.ID = id
	return nil
}

// GetByID returns ErrPlantNotFound when no row has the given id.
func (s *SQLPlantStore) GetByID(ctx context.Context, id int64) (*models.Plant, error) {
	row := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`SELECT id, name, image, price, is_in_stock FROM plant WHERE id = ?`),
		id,
	)

	var p models.Plant
	if err := row.Scan(&p.ID, &p.Name, &p.Image, &p.Price, &p.IsInStock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlantNotFound
		}
		return nil, fmt.Errorf("get plant %d: %w", id, err)
	}
	return &p, nil
}

// UpdateStock sets is_in_stock and leaves every other column untouched.
func (s *SQLPlantStore) UpdateStock(ctx context.Context, id int64, inStock bool) error {
	result, err := s.db.ExecContext(ctx,
		s.dialect.Rebind(`UPDATE plant SET is_in_stock = ? WHERE id = ?`),
		inStock, id,
	)
	if err != nil {
		return fmt.Errorf("update plant %d stock: %w", id, err)
	}
	return s.expectRow(ctx, result, id)
}

func (s *SQLPlantStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`DELETE FROM plant WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete plant %d: %w", id, err)
	}
	return s.expectRow(ctx, result, id)
}

// expectRow maps a zero-row write to ErrPlantNotFound.
// MySQL reports 0 affected rows for an UPDATE that changes nothing, so a
// zero count is only trusted after confirming the row is really gone.
func (s *SQLPlantStore) expectRow(ctx context.Context, result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists int
	err = s.db.QueryRowContext(ctx, s.dialect.Rebind(`SELECT 1 FROM plant WHERE id = ?`), id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPlantNotFound
	}
	if err != nil {
		return fmt.Errorf("check plant %d: %w", id, err)
	}
	return nil
}
