package handlers

import (
	"net/http"
	"strings"

	"rentalprima/internal/domain/models"
	"rentalprima/internal/repositories"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Categories repositories.CategoryRepository
}

type categoryRequest struct {
	ParentID    string `json:"parent_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Status      string `json:"status"`
}

// GET /api/categories
func (h CategoryHandler) List(c *gin.Context) {
	categories, err := h.Categories.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, categories, len(categories))
}

// GET /api/categories/:id
func (h CategoryHandler) Get(c *gin.Context) {
	category, err := h.Categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, category)
}

// POST /api/categories
func (h CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		RespondError(c, http.StatusBadRequest, "Please provide a category name", nil)
		return
	}

	category, err := h.Categories.Create(c.Request.Context(), models.Category{
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Status:      req.Status,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, category)
}

// PUT /api/categories/:id
func (h CategoryHandler) Update(c *gin.Context) {
	var req categoryRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	existing, err := h.Categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if strings.TrimSpace(req.Name) != "" {
		existing.Name = req.Name
	}
	if strings.TrimSpace(req.Description) != "" {
		existing.Description = req.Description
	}
	if strings.TrimSpace(req.Icon) != "" {
		existing.Icon = req.Icon
	}
	if strings.TrimSpace(req.Status) != "" {
		existing.Status = req.Status
	}
	if strings.TrimSpace(req.ParentID) != "" {
		existing.ParentID = req.ParentID
	}

	updated, err := h.Categories.Update(c.Request.Context(), existing)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, updated)
}

// DELETE /api/categories/:id
func (h CategoryHandler) Delete(c *gin.Context) {
	if err := h.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, gin.H{})
}
