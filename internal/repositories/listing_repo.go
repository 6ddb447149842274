package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"rentalprima/internal/domain"
	"rentalprima/internal/domain/models"
)

const listingColumns = "id, user_id, category_id, COALESCE(subcategory_id,''), title, description, price, status, is_featured, " +
	"location, COALESCE(brand,''), COALESCE(`condition`,''), COALESCE(price_period,'day'), COALESCE(deposit,0), " +
	"COALESCE(min_duration,1), COALESCE(available_from,''), COALESCE(available_to,''), delivery, COALESCE(shipping,0), " +
	"COALESCE(images,'[]'), COALESCE(video,''), COALESCE(rental_terms,''), accept_deposit, COALESCE(cancellation,''), " +
	"COALESCE(notes,''), created_at, updated_at"

// ListingRepository wraps data-service access for the listings table.
// CountFiltered decides whether Search's total count applies the same
// predicates as the row query or counts the whole table.
type ListingRepository struct {
	DB            *sql.DB
	CountFiltered bool
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(rs rowScanner) (models.Listing, error) {
	var l models.Listing
	var images string

	err := rs.Scan(
		&l.ID, &l.UserID, &l.CategoryID, &l.SubcategoryID, &l.Title, &l.Description, &l.Price, &l.Status, &l.IsFeatured,
		&l.Location, &l.Brand, &l.Condition, &l.PricePeriod, &l.Deposit,
		&l.MinDuration, &l.AvailableFrom, &l.AvailableTo, &l.Delivery, &l.Shipping,
		&images, &l.Video, &l.RentalTerms, &l.AcceptDeposit, &l.Cancellation,
		&l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return l, err
	}

	if err := json.Unmarshal([]byte(images), &l.Images); err != nil || l.Images == nil {
		l.Images = []string{}
	}
	return l, nil
}

// Search executes the compiled filter plus a count query and returns
// the page of rows with the total.
func (r ListingRepository) Search(ctx context.Context, f ListingFilter) ([]models.Listing, int, error) {
	where, args := buildListingWhere(f.Predicates())
	query := "SELECT " + listingColumns + " FROM listings" + where +
		" ORDER BY " + f.OrderClause() + " LIMIT ? OFFSET ?"

	queryArgs := append(append([]any{}, args...), f.Limit, f.Offset)
	rows, err := r.DB.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, domain.DataServiceError{Op: "listings.search", Err: err}
	}
	defer rows.Close()

	out := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, domain.DataServiceError{Op: "listings.search", Err: err}
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.DataServiceError{Op: "listings.search", Err: err}
	}

	count, err := r.count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return out, count, nil
}

func (r ListingRepository) count(ctx context.Context, f ListingFilter) (int, error) {
	query := "SELECT COUNT(*) FROM listings"
	var args []any
	if r.CountFiltered {
		where, whereArgs := buildListingWhere(f.Predicates())
		query += where
		args = whereArgs
	}

	var n int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, domain.DataServiceError{Op: "listings.count", Err: err}
	}
	return n, nil
}

func (r ListingRepository) GetByID(ctx context.Context, id string) (models.Listing, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+listingColumns+" FROM listings WHERE id = ?", id)
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return l, domain.NotFoundError{Resource: "listing", ID: id}
		}
		return l, domain.DataServiceError{Op: "listings.get", Err: err}
	}
	return l, nil
}

func (r ListingRepository) Create(ctx context.Context, l models.Listing) (models.Listing, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	images, _ := json.Marshal(l.Images)

	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO listings
            (id, user_id, category_id, subcategory_id, title, description, price, status, is_featured,
             location, brand, `+quoteColumn("condition")+`, price_period, deposit, min_duration,
             available_from, available_to, delivery, shipping, images, video, rental_terms,
             accept_deposit, cancellation, notes, created_at, updated_at)
        VALUES (?, ?, ?, NULLIF(?,''), ?, ?, ?, ?, ?, ?, NULLIF(?,''), NULLIF(?,''), ?, ?, ?, NULLIF(?,''), NULLIF(?,''), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.CategoryID, l.SubcategoryID, l.Title, l.Description, l.Price, l.Status, l.IsFeatured,
		l.Location, l.Brand, l.Condition, l.PricePeriod, l.Deposit, l.MinDuration,
		l.AvailableFrom, l.AvailableTo, l.Delivery, l.Shipping, string(images), l.Video, l.RentalTerms,
		l.AcceptDeposit, l.Cancellation, l.Notes, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return l, domain.DataServiceError{Op: "listings.create", Err: err}
	}
	return r.GetByID(ctx, l.ID)
}

// Update writes the full merged row. The caller is expected to have
// loaded the existing listing first, so a missing row surfaces there.
func (r ListingRepository) Update(ctx context.Context, l models.Listing) (models.Listing, error) {
	l.UpdatedAt = time.Now()
	images, _ := json.Marshal(l.Images)

	_, err := r.DB.ExecContext(ctx, `
        UPDATE listings SET
            category_id=?, subcategory_id=NULLIF(?,''), title=?, description=?, price=?, status=?, is_featured=?,
            location=?, brand=NULLIF(?,''), `+quoteColumn("condition")+`=NULLIF(?,''), price_period=?, deposit=?, min_duration=?,
            available_from=NULLIF(?,''), available_to=NULLIF(?,''), delivery=?, shipping=?, images=?, video=?,
            rental_terms=?, accept_deposit=?, cancellation=?, notes=?, updated_at=?
        WHERE id=?`,
		l.CategoryID, l.SubcategoryID, l.Title, l.Description, l.Price, l.Status, l.IsFeatured,
		l.Location, l.Brand, l.Condition, l.PricePeriod, l.Deposit, l.MinDuration,
		l.AvailableFrom, l.AvailableTo, l.Delivery, l.Shipping, string(images), l.Video,
		l.RentalTerms, l.AcceptDeposit, l.Cancellation, l.Notes, l.UpdatedAt,
		l.ID,
	)
	if err != nil {
		return l, domain.DataServiceError{Op: "listings.update", Err: err}
	}
	return r.GetByID(ctx, l.ID)
}

func (r ListingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM listings WHERE id = ?", id)
	if err != nil {
		return domain.DataServiceError{Op: "listings.delete", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "listing", ID: id}
	}
	return nil
}

// Featured returns active featured listings, newest first.
func (r ListingRepository) Featured(ctx context.Context, limit int) ([]models.Listing, error) {
	return r.listWhere(ctx, "is_featured = ? AND status = ?", []any{true, "active"}, limit)
}

// ByVendor returns every listing owned by the given user, newest first.
func (r ListingRepository) ByVendor(ctx context.Context, userID string) ([]models.Listing, error) {
	return r.listWhere(ctx, "user_id = ?", []any{userID}, 0)
}

// ByCategory returns active listings in a category, newest first.
func (r ListingRepository) ByCategory(ctx context.Context, categoryID string) ([]models.Listing, error) {
	return r.listWhere(ctx, "category_id = ? AND status = ?", []any{categoryID, "active"}, 0)
}

func (r ListingRepository) listWhere(ctx context.Context, where string, args []any, limit int) ([]models.Listing, error) {
	query := "SELECT " + listingColumns + " FROM listings WHERE " + where + " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.DataServiceError{Op: "listings.list", Err: err}
	}
	defer rows.Close()

	out := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, domain.DataServiceError{Op: "listings.list", Err: err}
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DataServiceError{Op: "listings.list", Err: err}
	}
	return out, nil
}
