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

const notificationColumns = "id, title, message, COALESCE(type,''), `read`, created_at"

type NotificationRepository struct {
	DB *sql.DB
}

func scanNotification(rs rowScanner) (models.Notification, error) {
	var n models.Notification
	err := rs.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt)
	return n, err
}

func (r NotificationRepository) List(ctx context.Context) ([]models.Notification, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+notificationColumns+" FROM notifications ORDER BY created_at DESC")
	if err != nil {
		return nil, domain.DataServiceError{Op: "notifications.list", Err: err}
	}
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, domain.DataServiceError{Op: "notifications.list", Err: err}
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DataServiceError{Op: "notifications.list", Err: err}
	}
	return out, nil
}

func (r NotificationRepository) GetByID(ctx context.Context, id string) (models.Notification, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+notificationColumns+" FROM notifications WHERE id = ?", id)
	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return n, domain.NotFoundError{Resource: "notification", ID: id}
		}
		return n, domain.DataServiceError{Op: "notifications.get", Err: err}
	}
	return n, nil
}

func (r NotificationRepository) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now()

	_, err := r.DB.ExecContext(ctx, "INSERT INTO notifications (id, title, message, type, `read`, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		n.ID, n.Title, n.Message, n.Type, n.Read, n.CreatedAt,
	)
	if err != nil {
		return n, domain.DataServiceError{Op: "notifications.create", Err: err}
	}
	return n, nil
}

// MarkRead flags a notification as read and returns the updated row.
func (r NotificationRepository) MarkRead(ctx context.Context, id string) (models.Notification, error) {
	res, err := r.DB.ExecContext(ctx, "UPDATE notifications SET `read` = 1 WHERE id = ?", id)
	if err != nil {
		return models.Notification{}, domain.DataServiceError{Op: "notifications.mark_read", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return models.Notification{}, gerr
		}
	}
	return r.GetByID(ctx, id)
}

func (r NotificationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return domain.DataServiceError{Op: "notifications.delete", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "notification", ID: id}
	}
	return nil
}
