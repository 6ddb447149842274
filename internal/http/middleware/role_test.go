package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rentalprima/internal/auth"
	"rentalprima/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func newRoleTestRouter(identity *auth.ResolvedIdentity, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if identity != nil {
				c.Set(identityKey, *identity)
			}
		},
		RequireRoles(allowed...),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		},
	)
	return r
}

func TestRequireRoles_Allowed(t *testing.T) {
	r := newRoleTestRouter(&auth.ResolvedIdentity{ID: "u-1", Role: models.RoleAdmin}, models.RoleAdmin, models.RoleSuperAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireRoles_WrongRoleForbidden(t *testing.T) {
	r := newRoleTestRouter(&auth.ResolvedIdentity{ID: "u-1", Role: models.RoleCustomer}, models.RoleAdmin, models.RoleSuperAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireRoles_NoHierarchy(t *testing.T) {
	// admin alone does not satisfy a super_admin-only route.
	r := newRoleTestRouter(&auth.ResolvedIdentity{ID: "u-1", Role: models.RoleAdmin}, models.RoleSuperAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireRoles_MissingIdentityUnauthorized(t *testing.T) {
	r := newRoleTestRouter(nil, models.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireRoles_RoleCaseInsensitive(t *testing.T) {
	r := newRoleTestRouter(&auth.ResolvedIdentity{ID: "u-1", Role: "Super_Admin"}, models.RoleSuperAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}
		if got := BearerToken(c); got != tc.want {
			t.Fatalf("header %q: got %q want %q", tc.header, got, tc.want)
		}
	}
}
