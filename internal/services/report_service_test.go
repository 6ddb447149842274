package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"rentalprima/internal/domain/models"
)

func TestListingReportGenerate(t *testing.T) {
	loader := func(ctx context.Context) ([]models.Listing, int, error) {
		return []models.Listing{
			{
				ID:          "l-1",
				Title:       "City bike",
				Location:    "Berlin",
				Price:       25,
				PricePeriod: "day",
				Status:      "active",
				Brand:       "Trek",
				IsFeatured:  true,
			},
			{
				ID:          "l-2",
				Title:       strings.Repeat("A very long title ", 10),
				Location:    "Hamburg",
				Price:       120,
				PricePeriod: "week",
				Status:      "pending",
			},
		}, 2, nil
	}

	svc := ListingReportService{Loader: loader}

	pdf, filename, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("Generate returned empty data")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
	if !strings.HasPrefix(filename, "listings-report-") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestTruncate_RuneSafe(t *testing.T) {
	in := strings.Repeat("ü", 40)
	out := truncate(in, 10)

	if got := len([]rune(out)); got != 10 {
		t.Fatalf("expected 10 runes, got %d (%q)", got, out)
	}
	if !strings.HasSuffix(out, "...") || !strings.HasPrefix(out, "üüü") {
		t.Fatalf("unexpected truncation result %q", out)
	}
	if short := truncate("kayak", 10); short != "kayak" {
		t.Fatalf("short strings should pass through, got %q", short)
	}
}

func TestListingReportGenerate_Empty(t *testing.T) {
	loader := func(ctx context.Context) ([]models.Listing, int, error) {
		return nil, 0, nil
	}

	svc := ListingReportService{Loader: loader}

	pdf, _, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("an empty table should still render a document")
	}
}
