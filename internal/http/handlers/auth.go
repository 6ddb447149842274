package handlers

import (
	"net/http"
	"strings"

	"rentalprima/internal/auth"
	"rentalprima/internal/domain"
	"rentalprima/internal/domain/models"
	"rentalprima/internal/http/middleware"
	"rentalprima/internal/repositories"
	"rentalprima/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves login, registration and session introspection.
type AuthHandler struct {
	Resolver auth.Resolver
	Provider *auth.ProviderClient
	Users    repositories.UserRepository
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	resolver := h.Resolver
	resolver.RequestID = middleware.GetRequestID(c)

	result, err := resolver.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondData(c, http.StatusOK, result)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

// POST /api/auth/register
//
// Provider sign-up happens before the profile insert; a profile insert
// failure after the provider accepted the identity is surfaced as a 500
// without rollback.
func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "Please provide an email and password", nil)
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

	session, err := h.Provider.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	userType := req.UserType
	if userType == "" {
		userType = models.RoleCustomer
	}

	user, err := h.Users.Create(c.Request.Context(), models.User{
		ID:       session.User.ID,
		Name:     req.Name,
		Username: userType + "_" + emailLocalPart(req.Email),
		Email:    req.Email,
		Role:     roleForUserType(userType),
		UserType: userType,
		Status:   "active",
	}, req.Password)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "register_profile_failed", "subject="+session.User.ID)
		RespondDomainError(c, err)
		return
	}

	RespondData(c, http.StatusCreated, gin.H{
		"user":    user.ToPublic(),
		"session": session,
	})
}

// GET /api/auth/me
func (h AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		RespondDomainError(c, domain.UnauthorizedError{})
		return
	}

	// Prefer the fresh profile row; identities from the local token
	// path (including demo) may have no backing profile.
	if profile, err := h.Users.GetByID(c.Request.Context(), identity.ID); err == nil {
		RespondData(c, http.StatusOK, profile.ToPublic())
		return
	}

	RespondData(c, http.StatusOK, identity)
}

// GET /api/auth/logout
func (h AuthHandler) Logout(c *gin.Context) {
	if token := middleware.BearerToken(c); token != "" {
		if err := h.Provider.SignOut(c.Request.Context(), token); err != nil {
			// Locally-signed sessions are unknown to the provider;
			// logout still succeeds for the client.
			utils.LogEvent(middleware.GetRequestID(c), "auth", "provider_signout_failed", err.Error())
		}
	}
	RespondMessage(c, "Logged out successfully")
}

// roleForUserType maps the requested user type onto a stored role.
func roleForUserType(userType string) string {
	switch userType {
	case models.RoleSuperAdmin, "owner", models.RoleAdmin:
		return models.RoleAdmin
	default:
		return models.RoleCustomer
	}
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
