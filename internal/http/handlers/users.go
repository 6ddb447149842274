package handlers

import (
	"net/http"
	"strings"

	"rentalprima/internal/domain/models"
	"rentalprima/internal/repositories"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the admin-facing users CRUD.
type UserHandler struct {
	Users repositories.UserRepository
}

type userRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	UserType string `json:"user_type"`
	Status   string `json:"status"`
}

// GET /api/users
func (h UserHandler) List(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context(), "")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, publicUsers(users), len(users))
}

// GET /api/users/:id
func (h UserHandler) Get(c *gin.Context) {
	user, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, user.ToPublic())
}

// POST /api/users
func (h UserHandler) Create(c *gin.Context) {
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

	role := req.Role
	if role == "" {
		role = roleForUserType(req.UserType)
	}

	user, err := h.Users.Create(c.Request.Context(), models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Role:     role,
		UserType: req.UserType,
		Status:   req.Status,
	}, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, user.ToPublic())
}

// PUT /api/users/:id
func (h UserHandler) Update(c *gin.Context) {
	var req userRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	existing, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
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

// DELETE /api/users/:id
func (h UserHandler) Delete(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, gin.H{})
}

func mergeUserRequest(u *models.User, req userRequest) {
	if strings.TrimSpace(req.Name) != "" {
		u.Name = req.Name
	}
	if strings.TrimSpace(req.Username) != "" {
		u.Username = req.Username
	}
	if strings.TrimSpace(req.Email) != "" {
		u.Email = req.Email
	}
	if strings.TrimSpace(req.UserType) != "" {
		u.UserType = req.UserType
	}
	if strings.TrimSpace(req.Status) != "" {
		u.Status = req.Status
	}
}

func publicUsers(users []models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToPublic())
	}
	return out
}
