package repositories

import (
	"context"
	"database/sql/driver"
	"net/url"
	"testing"
	"time"

	"rentalprima/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var listingScanColumns = []string{
	"id", "user_id", "category_id", "subcategory_id", "title", "description", "price", "status", "is_featured",
	"location", "brand", "condition", "price_period", "deposit", "min_duration", "available_from", "available_to",
	"delivery", "shipping", "images", "video", "rental_terms", "accept_deposit", "cancellation", "notes",
	"created_at", "updated_at",
}

func listingRow() []driver.Value {
	now := time.Now()
	return []driver.Value{
		"l-1", "u-1", "c-1", "", "City bike", "A bike", 25.0, "active", true,
		"Berlin", "Trek", "good", "day", 0.0, 1, "", "",
		false, 0.0, `["a.jpg"]`, "", "", false, "flexible", "",
		now, now,
	}
}

func addListingRow(rows *sqlmock.Rows) *sqlmock.Rows {
	return rows.AddRow(listingRow()...)
}

func TestListingSearch_FilteredCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	q := url.Values{}
	q.Set("status", "active")
	q.Set("search", "bike")
	f, err := ParseListingFilter(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	mock.ExpectQuery("SELECT (.+) FROM listings WHERE `status` = \\? AND \\(`title` LIKE \\? OR `description` LIKE \\? OR `location` LIKE \\? OR `brand` LIKE \\?\\) ORDER BY `created_at` DESC LIMIT \\? OFFSET \\?").
		WithArgs("active", "%bike%", "%bike%", "%bike%", "%bike%", DefaultListingLimit, 0).
		WillReturnRows(addListingRow(sqlmock.NewRows(listingScanColumns)))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM listings WHERE `status` = \\?").
		WithArgs("active", "%bike%", "%bike%", "%bike%", "%bike%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	repo := ListingRepository{DB: db, CountFiltered: true}
	items, total, err := repo.Search(context.Background(), f)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 row, got %d", len(items))
	}
	if total != 7 {
		t.Fatalf("expected filtered count 7, got %d", total)
	}
	if items[0].Images == nil || len(items[0].Images) != 1 {
		t.Fatalf("images not decoded: %+v", items[0].Images)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListingSearch_UnfilteredCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	q := url.Values{}
	q.Set("status", "active")
	f, err := ParseListingFilter(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	mock.ExpectQuery("SELECT (.+) FROM listings WHERE `status` = \\?").
		WithArgs("active", DefaultListingLimit, 0).
		WillReturnRows(addListingRow(sqlmock.NewRows(listingScanColumns)))
	// No WHERE on the count when CountFiltered is off.
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM listings$").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	repo := ListingRepository{DB: db, CountFiltered: false}
	_, total, err := repo.Search(context.Background(), f)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if total != 42 {
		t.Fatalf("expected table count 42, got %d", total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListingGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM listings WHERE id = \\?").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(listingScanColumns))

	repo := ListingRepository{DB: db}
	_, err = repo.GetByID(context.Background(), "missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListingDelete_NoRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM listings WHERE id = \\?").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ListingRepository{DB: db}
	if err := repo.Delete(context.Background(), "missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListingFeatured_OnlyActiveFeatured(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM listings WHERE is_featured = \\? AND status = \\? ORDER BY created_at DESC LIMIT \\?").
		WithArgs(true, "active", 8).
		WillReturnRows(addListingRow(sqlmock.NewRows(listingScanColumns)))

	repo := ListingRepository{DB: db}
	items, err := repo.Featured(context.Background(), 8)
	if err != nil {
		t.Fatalf("featured error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 row, got %d", len(items))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
