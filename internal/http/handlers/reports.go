package handlers

import (
	"net/http"

	"rentalprima/internal/http/middleware"
	"rentalprima/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportHandler streams PDF reports to admin users.
type ReportHandler struct {
	Reports services.ListingReportService
}

// GET /api/reports/listings.pdf
func (h ReportHandler) Listings(c *gin.Context) {
	svc := h.Reports
	svc.RequestID = middleware.GetRequestID(c)

	data, filename, err := svc.Generate(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
