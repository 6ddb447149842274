package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rentalprima/internal/auth"
	"rentalprima/internal/domain/models"
	"rentalprima/internal/http/middleware"
	"rentalprima/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

type unreachableProvider struct{}

func (unreachableProvider) GetUser(ctx context.Context, accessToken string) (auth.ProviderUser, error) {
	return auth.ProviderUser{}, errors.New("provider unreachable")
}

func (unreachableProvider) SignInWithPassword(ctx context.Context, email, password string) (auth.ProviderSession, error) {
	return auth.ProviderSession{}, errors.New("provider unreachable")
}

var userScanColumns = []string{
	"id", "name", "username", "email", "password_hash", "role", "user_type", "status", "created_at", "updated_at",
}

func newAuthTestRouter(t *testing.T, demo bool) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := repositories.UserRepository{DB: db}
	resolver := auth.Resolver{
		Provider:  unreachableProvider{},
		Tokens:    auth.NewTokenManager("test-secret", "rental-prima", time.Hour),
		Users:     users,
		DemoLogin: demo,
	}
	h := AuthHandler{
		Resolver: resolver,
		Provider: auth.NewProviderClient("", "", time.Second),
		Users:    users,
	}

	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/register", h.Register)
	r.GET("/api/auth/me", middleware.Authenticate(resolver), h.Me)
	return r, mock
}

func TestLoginEndpoint_DemoFallback(t *testing.T) {
	r, mock := newAuthTestRouter(t, true)

	// Provider is down and no local profile exists for the demo email.
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\?").
		WithArgs("admin@gmail.com").
		WillReturnRows(sqlmock.NewRows(userScanColumns))

	body := `{"email":"admin@gmail.com","password":"password123"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), models.RoleSuperAdmin) {
		t.Fatalf("demo login should surface super_admin: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "access_token") {
		t.Fatalf("login response should carry a session: %s", w.Body.String())
	}
}

func TestLoginEndpoint_InvalidCredentialsIs401(t *testing.T) {
	r, mock := newAuthTestRouter(t, false)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\?").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userScanColumns))

	body := `{"email":"nobody@example.com","password":"wrong"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterEndpoint_MissingPasswordIs400(t *testing.T) {
	r, _ := newAuthTestRouter(t, false)

	body := `{"email":"new@example.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Please provide an email and password") {
		t.Fatalf("unexpected message: %s", w.Body.String())
	}
}

func TestRegisterEndpoint_ExistingEmailIs400(t *testing.T) {
	r, mock := newAuthTestRouter(t, false)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE email = \\?").
		WithArgs("taken@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	body := `{"email":"taken@example.com","password":"pw123456"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "User already exists") {
		t.Fatalf("unexpected message: %s", w.Body.String())
	}
}

func TestMeEndpoint_NoBearerIs401(t *testing.T) {
	r, _ := newAuthTestRouter(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMeEndpoint_LocalTokenWithoutProfile(t *testing.T) {
	r, mock := newAuthTestRouter(t, false)

	tokens := auth.NewTokenManager("test-secret", "rental-prima", time.Hour)
	token, _, err := tokens.Issue(auth.ResolvedIdentity{ID: "demo_admin", Email: "admin@gmail.com", Role: models.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	// Identity resolves from the token; the profile lookup then misses.
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\?").
		WithArgs("demo_admin").
		WillReturnRows(sqlmock.NewRows(userScanColumns))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "demo_admin") {
		t.Fatalf("identity fallback should be returned: %s", w.Body.String())
	}
}
