package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rentalprima/internal/domain"
	"rentalprima/internal/domain/models"
)

const userColumns = "id, COALESCE(name,''), COALESCE(username,''), email, COALESCE(password_hash,''), role, COALESCE(user_type,''), status, created_at, updated_at"

// UserRepository wraps data-service access for the users profile table.
type UserRepository struct {
	DB *sql.DB
}

func scanUser(rs rowScanner) (models.User, error) {
	var u models.User
	err := rs.Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash,
		&u.Role, &u.UserType, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, domain.NotFoundError{Resource: "user", ID: id}
		}
		return u, domain.DataServiceError{Op: "users.get", Err: err}
	}
	return u, nil
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, domain.NotFoundError{Resource: "user", ID: email}
		}
		return u, domain.DataServiceError{Op: "users.get_by_email", Err: err}
	}
	return u, nil
}

// List returns user profiles, optionally narrowed to one role.
func (r UserRepository) List(ctx context.Context, role string) ([]models.User, error) {
	query := "SELECT " + userColumns + " FROM users"
	var args []any
	if strings.TrimSpace(role) != "" {
		query += " WHERE role = ?"
		args = append(args, role)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.DataServiceError{Op: "users.list", Err: err}
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.DataServiceError{Op: "users.list", Err: err}
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DataServiceError{Op: "users.list", Err: err}
	}
	return out, nil
}

func (r UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&n); err != nil {
		return false, domain.DataServiceError{Op: "users.email_exists", Err: err}
	}
	return n > 0, nil
}

// Create inserts a profile row. A non-empty password is stored as a
// bcrypt hash so the local login fallback can verify it when the
// hosted provider is unreachable.
func (r UserRepository) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleCustomer
	}
	if u.Status == "" {
		u.Status = "active"
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if strings.TrimSpace(password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return u, domain.DataServiceError{Op: "users.hash_password", Err: err}
		}
		u.PasswordHash = string(hash)
	}

	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO users (id, name, username, email, password_hash, role, user_type, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, NULLIF(?,''), ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Username, u.Email, u.PasswordHash, u.Role, u.UserType, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return u, domain.DataServiceError{Op: "users.create", Err: err}
	}
	return u, nil
}

// Update writes mutable profile fields. Role and password hash are
// deliberately not touched here.
func (r UserRepository) Update(ctx context.Context, u models.User) (models.User, error) {
	u.UpdatedAt = time.Now()
	_, err := r.DB.ExecContext(ctx, `
        UPDATE users SET name=?, username=?, email=?, user_type=?, status=?, updated_at=? WHERE id=?`,
		u.Name, u.Username, u.Email, u.UserType, u.Status, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return u, domain.DataServiceError{Op: "users.update", Err: err}
	}
	return r.GetByID(ctx, u.ID)
}

func (r UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return domain.DataServiceError{Op: "users.delete", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "user", ID: id}
	}
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (r UserRepository) VerifyPassword(u models.User, password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
