package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"rentalprima/internal/domain"
	"rentalprima/internal/domain/models"
)

const categoryColumns = "id, COALESCE(parent_id,''), name, COALESCE(description,''), COALESCE(icon,''), status, created_at, updated_at"

type CategoryRepository struct {
	DB *sql.DB
}

func scanCategory(rs rowScanner) (models.Category, error) {
	var c models.Category
	err := rs.Scan(&c.ID, &c.ParentID, &c.Name, &c.Description, &c.Icon, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+categoryColumns+" FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, domain.DataServiceError{Op: "categories.list", Err: err}
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, domain.DataServiceError{Op: "categories.list", Err: err}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DataServiceError{Op: "categories.list", Err: err}
	}
	return out, nil
}

func (r CategoryRepository) GetByID(ctx context.Context, id string) (models.Category, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = ?", id)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, domain.NotFoundError{Resource: "category", ID: id}
		}
		return c, domain.DataServiceError{Op: "categories.get", Err: err}
	}
	return c, nil
}

func (r CategoryRepository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = "active"
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO categories (id, parent_id, name, description, icon, status, created_at, updated_at)
        VALUES (?, NULLIF(?,''), ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ParentID, c.Name, c.Description, c.Icon, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return c, domain.DataServiceError{Op: "categories.create", Err: err}
	}
	return c, nil
}

func (r CategoryRepository) Update(ctx context.Context, c models.Category) (models.Category, error) {
	c.UpdatedAt = time.Now()
	_, err := r.DB.ExecContext(ctx, `
        UPDATE categories SET parent_id=NULLIF(?,''), name=?, description=?, icon=?, status=?, updated_at=? WHERE id=?`,
		c.ParentID, c.Name, c.Description, c.Icon, c.Status, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return c, domain.DataServiceError{Op: "categories.update", Err: err}
	}
	return r.GetByID(ctx, c.ID)
}

func (r CategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return domain.DataServiceError{Op: "categories.delete", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "category", ID: id}
	}
	return nil
}
