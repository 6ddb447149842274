package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"rentalprima/internal/domain"
	"rentalprima/internal/domain/models"
	"rentalprima/internal/http/middleware"
	"rentalprima/internal/repositories"
	"rentalprima/internal/utils"

	"github.com/gin-gonic/gin"
)

const defaultFeaturedLimit = 8

// ListingHandler serves the listings surface, including the filtered
// search backed by the query-filter compiler.
type ListingHandler struct {
	Listings      repositories.ListingRepository
	Users         repositories.UserRepository
	Categories    repositories.CategoryRepository
	Notifications repositories.NotificationRepository
}

// GET /api/listings
func (h ListingHandler) List(c *gin.Context) {
	filter, err := repositories.ParseListingFilter(c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	items, count, err := h.Listings.Search(c.Request.Context(), filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondList(c, items, count)
}

// GET /api/listings/featured
func (h ListingHandler) Featured(c *gin.Context) {
	limit := defaultFeaturedLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			RespondDomainError(c, domain.ValidationError{Field: "limit", Msg: "must be an integer"})
			return
		}
		limit = n
	}

	items, err := h.Listings.Featured(c.Request.Context(), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, len(items))
}

// GET /api/listings/vendor/:userId
func (h ListingHandler) ByVendor(c *gin.Context) {
	items, err := h.Listings.ByVendor(c.Request.Context(), c.Param("userId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, len(items))
}

// GET /api/listings/category/:categoryId
func (h ListingHandler) ByCategory(c *gin.Context) {
	items, err := h.Listings.ByCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, len(items))
}

// GET /api/listings/:id
func (h ListingHandler) Get(c *gin.Context) {
	listing, err := h.Listings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// Relations are best-effort; a missing referenced row does not
	// fail the lookup.
	if cat, cerr := h.Categories.GetByID(c.Request.Context(), listing.CategoryID); cerr == nil {
		listing.Category = &cat
	}
	if owner, uerr := h.Users.GetByID(c.Request.Context(), listing.UserID); uerr == nil {
		pub := owner.ToPublic()
		listing.User = &pub
	}

	RespondData(c, http.StatusOK, listing)
}

// POST /api/listings
func (h ListingHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		RespondDomainError(c, domain.UnauthorizedError{})
		return
	}

	var input models.ListingInput
	if !BindJSONOrError(c, &input) {
		return
	}

	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" ||
		input.Price == nil || strings.TrimSpace(input.CategoryID) == "" || strings.TrimSpace(input.Location) == "" {
		RespondError(c, http.StatusBadRequest, "Please provide title, description, price, category_id, and location", nil)
		return
	}

	listing := listingFromInput(models.Listing{UserID: identity.ID}, input)
	if listing.Status == "" {
		listing.Status = "pending"
	}
	if listing.PricePeriod == "" {
		listing.PricePeriod = "day"
	}
	if listing.MinDuration < 1 {
		listing.MinDuration = 1
	}
	if listing.Cancellation == "" {
		listing.Cancellation = "flexible"
	}

	created, err := h.Listings.Create(c.Request.Context(), listing)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// Notify admins about the pending submission; a failed insert does
	// not fail the request.
	if _, nerr := h.Notifications.Create(c.Request.Context(), models.Notification{
		Title:   "New listing submitted",
		Message: created.Title + " is awaiting review",
		Type:    "listing",
	}); nerr != nil {
		utils.LogEvent(middleware.GetRequestID(c), "listings", "notify_failed", nerr.Error())
	}

	RespondData(c, http.StatusCreated, created)
}

// PUT /api/listings/:id
func (h ListingHandler) Update(c *gin.Context) {
	existing, ok := h.loadOwned(c)
	if !ok {
		return
	}

	var input models.ListingInput
	if !BindJSONOrError(c, &input) {
		return
	}

	updated, err := h.Listings.Update(c.Request.Context(), listingFromInput(existing, input))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, updated)
}

// DELETE /api/listings/:id
func (h ListingHandler) Delete(c *gin.Context) {
	existing, ok := h.loadOwned(c)
	if !ok {
		return
	}

	if err := h.Listings.Delete(c.Request.Context(), existing.ID); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, gin.H{})
}

// loadOwned fetches the listing and enforces the owner-or-admin rule
// for mutations.
func (h ListingHandler) loadOwned(c *gin.Context) (models.Listing, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		RespondDomainError(c, domain.UnauthorizedError{})
		return models.Listing{}, false
	}

	existing, err := h.Listings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return models.Listing{}, false
	}

	isAdmin := identity.Role == models.RoleAdmin || identity.Role == models.RoleSuperAdmin
	if identity.ID != existing.UserID && !isAdmin {
		RespondDomainError(c, domain.ForbiddenError{Msg: "not authorized to modify this listing"})
		return models.Listing{}, false
	}

	return existing, true
}

// listingFromInput merges the provided fields over an existing row.
// Empty strings and nil pointers keep the current value.
func listingFromInput(base models.Listing, in models.ListingInput) models.Listing {
	setStr := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}

	setStr(&base.Title, in.Title)
	setStr(&base.Description, in.Description)
	if in.Price != nil {
		base.Price = *in.Price
	}
	setStr(&base.CategoryID, in.CategoryID)
	setStr(&base.SubcategoryID, in.SubcategoryID)
	setStr(&base.Location, in.Location)
	setStr(&base.Status, in.Status)
	if in.IsFeatured != nil {
		base.IsFeatured = *in.IsFeatured
	}
	setStr(&base.Brand, in.Brand)
	setStr(&base.Condition, in.Condition)
	setStr(&base.PricePeriod, in.PricePeriod)
	if in.Deposit != nil {
		base.Deposit = *in.Deposit
	}
	if in.MinDuration != nil {
		base.MinDuration = *in.MinDuration
	}
	setStr(&base.AvailableFrom, in.AvailableFrom)
	setStr(&base.AvailableTo, in.AvailableTo)
	if in.Delivery != nil {
		base.Delivery = *in.Delivery
	}
	if in.Shipping != nil {
		base.Shipping = *in.Shipping
	}
	if in.Images != nil {
		base.Images = in.Images
	}
	setStr(&base.Video, in.Video)
	setStr(&base.RentalTerms, in.RentalTerms)
	if in.AcceptDeposit != nil {
		base.AcceptDeposit = *in.AcceptDeposit
	}
	setStr(&base.Cancellation, in.Cancellation)
	setStr(&base.Notes, in.Notes)

	return base
}
