package handlers

import (
	"net/http"
	"strings"

	"rentalprima/internal/domain/models"
	"rentalprima/internal/repositories"

	"github.com/gin-gonic/gin"
)

// AdminHandler manages administrator accounts: users rows restricted
// to the admin role.
type AdminHandler struct {
	Users repositories.UserRepository
}

// GET /api/admins
func (h AdminHandler) List(c *gin.Context) {
	admins, err := h.Users.List(c.Request.Context(), models.RoleAdmin)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, publicUsers(admins), len(admins))
}

// GET /api/admins/:id
func (h AdminHandler) Get(c *gin.Context) {
	admin, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if admin.Role != models.RoleAdmin {
		RespondError(c, http.StatusBadRequest, "This user is not an admin", nil)
		return
	}
	RespondData(c, http.StatusOK, admin.ToPublic())
}

// POST /api/admins
func (h AdminHandler) Create(c *gin.Context) {
	var req userRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		RespondError(c, http.StatusBadRequest, "Please provide an email", nil)
		return
	}

	exists, err := h.Users.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondError(c, http.StatusBadRequest, "User already exists", nil)
		return
	}

	userType := req.UserType
	if userType == "" {
		userType = models.RoleSuperAdmin
	}

	admin, err := h.Users.Create(c.Request.Context(), models.User{
		Name:     req.Name,
		Username: userType + "_" + emailLocalPart(req.Email),
		Email:    req.Email,
		Role:     models.RoleAdmin,
		UserType: userType,
		Status:   req.Status,
	}, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, admin.ToPublic())
}

// PUT /api/admins/:id
//
// Role and password never change through this endpoint.
func (h AdminHandler) Update(c *gin.Context) {
	var req userRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Role != "" && req.Role != models.RoleAdmin {
		RespondError(c, http.StatusBadRequest, "Cannot change role through this endpoint", nil)
		return
	}

	existing, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if existing.Role != models.RoleAdmin {
		RespondError(c, http.StatusBadRequest, "This user is not an admin", nil)
		return
	}

	mergeUserRequest(&existing, req)

	updated, err := h.Users.Update(c.Request.Context(), existing)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, updated.ToPublic())
}

// DELETE /api/admins/:id
func (h AdminHandler) Delete(c *gin.Context) {
	existing, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if existing.Role != models.RoleAdmin {
		RespondError(c, http.StatusBadRequest, "This user is not an admin", nil)
		return
	}

	if err := h.Users.Delete(c.Request.Context(), existing.ID); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, gin.H{})
}
