package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"rentalprima/internal/domain/models"
	"rentalprima/internal/repositories"
	"rentalprima/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// reportRowLimit caps the number of listings rendered into one report.
const reportRowLimit = 500

// ListingReportService renders the admin listings summary as a PDF.
// Loader, when set, replaces the repository lookup in tests.
type ListingReportService struct {
	Listings  repositories.ListingRepository
	RequestID string
	Loader    func(ctx context.Context) ([]models.Listing, int, error)
}

// Generate builds the report and returns the PDF bytes plus filename.
func (s ListingReportService) Generate(ctx context.Context) ([]byte, string, error) {
	items, total, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "report", "generate_listings", fmt.Sprintf("rows=%d total=%d", len(items), total))
	return buildListingReportPDF(items, total)
}

func (s ListingReportService) load(ctx context.Context) ([]models.Listing, int, error) {
	if s.Loader != nil {
		return s.Loader(ctx)
	}
	filter := repositories.ListingFilter{
		OrderBy: "created_at",
		Limit:   reportRowLimit,
	}
	return s.Listings.Search(ctx, filter)
}

func buildListingReportPDF(items []models.Listing, total int) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Listings Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "LISTINGS REPORT")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s   Total listings: %d", time.Now().Format("2006-01-02 15:04"), total))
	pdf.Ln(10)

	colWidths := []float64{80, 45, 25, 25, 25, 50, 25}
	headers := []string{"Title", "Location", "Price", "Period", "Status", "Brand", "Featured"}

	pdf.SetFont("Helvetica", "B", 10)
	for i, head := range headers {
		pdf.CellFormat(colWidths[i], 7, head, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range items {
		featured := "no"
		if l.IsFeatured {
			featured = "yes"
		}
		cells := []string{
			truncate(l.Title, 52),
			truncate(l.Location, 30),
			fmt.Sprintf("%.2f", l.Price),
			l.PricePeriod,
			l.Status,
			truncate(l.Brand, 32),
			featured,
		}
		for i, cell := range cells {
			pdf.CellFormat(colWidths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("listings-report-%s.pdf", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

// truncate shortens on rune boundaries so multi-byte text is never
// split mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
