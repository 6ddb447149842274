package auth

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"rentalprima/internal/domain"
	"rentalprima/internal/domain/models"
	"rentalprima/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

type fakeProvider struct {
	user       ProviderUser
	userErr    error
	session    ProviderSession
	sessionErr error
}

func (f fakeProvider) GetUser(ctx context.Context, accessToken string) (ProviderUser, error) {
	return f.user, f.userErr
}

func (f fakeProvider) SignInWithPassword(ctx context.Context, email, password string) (ProviderSession, error) {
	return f.session, f.sessionErr
}

var userScanColumns = []string{
	"id", "name", "username", "email", "password_hash", "role", "user_type", "status", "created_at", "updated_at",
}

func userRow(id, email, hash, role string) []driver.Value {
	now := time.Now()
	return []driver.Value{id, "Test User", "tester", email, hash, role, "", "active", now, now}
}

func newTestResolver(t *testing.T, provider IdentityProvider, demo bool) (Resolver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return Resolver{
		Provider:  provider,
		Tokens:    NewTokenManager("test-secret", "rental-prima", time.Hour),
		Users:     repositories.UserRepository{DB: db},
		DemoLogin: demo,
	}, mock
}

func TestResolveToken_ProviderPath(t *testing.T) {
	provider := fakeProvider{user: ProviderUser{ID: "u-1", Email: "a@b.c"}}
	r, mock := newTestResolver(t, provider, false)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\?").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(userScanColumns).AddRow(userRow("u-1", "a@b.c", "", models.RoleAdmin)...))

	identity, err := r.ResolveToken(context.Background(), "provider-token")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if identity.Source != SourceProvider {
		t.Fatalf("expected provider source, got %s", identity.Source)
	}
	if identity.Role != models.RoleAdmin {
		t.Fatalf("role should come from the profile row, got %s", identity.Role)
	}
}

func TestResolveToken_ProfileMissingIsUnauthorized(t *testing.T) {
	provider := fakeProvider{user: ProviderUser{ID: "ghost", Email: "g@b.c"}}
	r, mock := newTestResolver(t, provider, false)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\?").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userScanColumns))

	_, err := r.ResolveToken(context.Background(), "provider-token")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
}

func TestResolveToken_FallsBackToLocalToken(t *testing.T) {
	provider := fakeProvider{userErr: errors.New("provider unreachable")}
	r, _ := newTestResolver(t, provider, false)

	token, _, err := r.Tokens.Issue(ResolvedIdentity{ID: "u-2", Email: "b@b.c", Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	identity, err := r.ResolveToken(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if identity.Source != SourceLocalToken {
		t.Fatalf("expected local token source, got %s", identity.Source)
	}
	if identity.ID != "u-2" {
		t.Fatalf("subject not carried, got %s", identity.ID)
	}
}

func TestResolveToken_BothPathsFail(t *testing.T) {
	provider := fakeProvider{userErr: errors.New("provider unreachable")}
	r, _ := newTestResolver(t, provider, false)

	_, err := r.ResolveToken(context.Background(), "garbage")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
}

func TestResolveToken_EmptyCredential(t *testing.T) {
	r, _ := newTestResolver(t, fakeProvider{}, false)

	_, err := r.ResolveToken(context.Background(), "   ")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
}

func TestLogin_ProviderPath(t *testing.T) {
	provider := fakeProvider{session: ProviderSession{
		AccessToken: "provider-access",
		TokenType:   "bearer",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
		User:        ProviderUser{ID: "u-1", Email: "a@b.c"},
	}}
	r, mock := newTestResolver(t, provider, false)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\?").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(userScanColumns).AddRow(userRow("u-1", "a@b.c", "", models.RoleCustomer)...))

	result, err := r.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if result.Source != SourceProvider {
		t.Fatalf("expected provider source, got %s", result.Source)
	}
	if result.Session.AccessToken != "provider-access" {
		t.Fatalf("provider access token should be passed through, got %q", result.Session.AccessToken)
	}
}

func TestLogin_LocalFallback(t *testing.T) {
	provider := fakeProvider{sessionErr: errors.New("provider unreachable")}
	r, mock := newTestResolver(t, provider, false)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\?").
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows(userScanColumns).AddRow(userRow("u-1", "a@b.c", string(hash), models.RoleCustomer)...))

	result, err := r.Login(context.Background(), "a@b.c", "hunter2")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if result.Source != SourceLocalToken {
		t.Fatalf("expected local token source, got %s", result.Source)
	}
	if result.Session.AccessToken == "" {
		t.Fatalf("expected a locally-signed session token")
	}
}

func TestLogin_DemoEnabled(t *testing.T) {
	provider := fakeProvider{sessionErr: errors.New("provider unreachable")}
	r, mock := newTestResolver(t, provider, true)

	// No local profile for the demo email either.
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\?").
		WithArgs("admin@gmail.com").
		WillReturnRows(sqlmock.NewRows(userScanColumns))

	result, err := r.Login(context.Background(), "admin@gmail.com", "password123")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if result.Source != SourceDemo {
		t.Fatalf("expected demo source, got %s", result.Source)
	}
	if result.User.Role != models.RoleSuperAdmin {
		t.Fatalf("demo identity should be super_admin, got %s", result.User.Role)
	}
	if until := time.Until(result.Session.ExpiresAt); until <= 0 || until > time.Hour {
		t.Fatalf("demo session expiry outside token ttl: %v", result.Session.ExpiresAt)
	}
}

func TestLogin_DemoDisabled(t *testing.T) {
	provider := fakeProvider{sessionErr: errors.New("provider unreachable")}
	r, mock := newTestResolver(t, provider, false)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\?").
		WithArgs("admin@gmail.com").
		WillReturnRows(sqlmock.NewRows(userScanColumns))

	_, err := r.Login(context.Background(), "admin@gmail.com", "password123")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected UnauthorizedError with demo login off, got %v", err)
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	r, _ := newTestResolver(t, fakeProvider{}, false)

	_, err := r.Login(context.Background(), "", "")
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
