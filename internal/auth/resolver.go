package auth

import (
	"context"
	"strings"
	"time"

	"rentalprima/internal/domain"
	"rentalprima/internal/domain/models"
	"rentalprima/internal/repositories"
	"rentalprima/internal/utils"
)

// Source records which verification path produced an identity.
type Source string

const (
	SourceProvider   Source = "provider"
	SourceLocalToken Source = "local_token"
	SourceDemo       Source = "demo"
)

// ResolvedIdentity is the outcome of credential resolution. It lives
// for one request and is never persisted.
type ResolvedIdentity struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
	Source Source `json:"-"`
}

// Session is the token envelope handed back to clients on login.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// LoginResult pairs the authenticated user with their session.
type LoginResult struct {
	User    models.PublicUser `json:"user"`
	Session Session           `json:"session"`
	Source  Source            `json:"-"`
}

// IdentityProvider is the subset of the hosted provider the resolver
// depends on.
type IdentityProvider interface {
	GetUser(ctx context.Context, accessToken string) (ProviderUser, error)
	SignInWithPassword(ctx context.Context, email, password string) (ProviderSession, error)
}

const (
	demoEmail    = "admin@gmail.com"
	demoPassword = "password123"
)

// Resolver implements the layered credential resolution: hosted
// provider first, locally-signed token as fallback, and for the login
// flow only a local credential check plus the optional demo identity.
type Resolver struct {
	Provider  IdentityProvider
	Tokens    *TokenManager
	Users     repositories.UserRepository
	DemoLogin bool
	RequestID string
}

// ResolveToken verifies a bearer credential. Provider verification is
// attempted first; any provider failure falls back to local HS256
// verification. A subject the provider confirms but whose profile row
// is missing resolves to unauthorized.
func (r Resolver) ResolveToken(ctx context.Context, credential string) (ResolvedIdentity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return ResolvedIdentity{}, domain.UnauthorizedError{Msg: "not authorized to access this route"}
	}

	subject, err := r.Provider.GetUser(ctx, credential)
	if err == nil {
		profile, perr := r.Users.GetByID(ctx, subject.ID)
		if perr != nil {
			utils.LogEvent(r.RequestID, "auth", "profile_lookup_failed", "subject="+subject.ID)
			return ResolvedIdentity{}, domain.UnauthorizedError{Msg: "user profile not found", Err: perr}
		}
		return ResolvedIdentity{
			ID:     profile.ID,
			Email:  profile.Email,
			Name:   profile.Name,
			Role:   profile.Role,
			Source: SourceProvider,
		}, nil
	}

	utils.LogEvent(r.RequestID, "auth", "provider_verify_failed", "falling back to local token")

	claims, verr := r.Tokens.Verify(credential)
	if verr != nil {
		return ResolvedIdentity{}, domain.UnauthorizedError{Msg: "invalid token", Err: verr}
	}
	return ResolvedIdentity{
		ID:     claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
		Source: SourceLocalToken,
	}, nil
}

// Login resolves an email/password pair: provider sign-in first, then
// the local credential store, then (when enabled) the demo identity.
func (r Resolver) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Msg: "please provide an email and password"}
	}

	session, err := r.Provider.SignInWithPassword(ctx, email, password)
	if err == nil {
		profile, perr := r.Users.GetByID(ctx, session.User.ID)
		if perr == nil {
			return LoginResult{
				User: profile.ToPublic(),
				Session: Session{
					AccessToken: session.AccessToken,
					TokenType:   "bearer",
					ExpiresAt:   time.Unix(session.ExpiresAt, 0),
				},
				Source: SourceProvider,
			}, nil
		}
		utils.LogEvent(r.RequestID, "auth", "profile_lookup_failed", "subject="+session.User.ID)
	} else {
		utils.LogEvent(r.RequestID, "auth", "provider_login_failed", "falling back to local credentials")
	}

	if result, ok := r.localLogin(ctx, email, password); ok {
		return result, nil
	}

	if r.DemoLogin && email == demoEmail && password == demoPassword {
		return r.demoLogin(email)
	}

	return LoginResult{}, domain.UnauthorizedError{Msg: "invalid credentials"}
}

// localLogin checks the bcrypt hash stored on the profile row and
// issues a locally-signed session on success.
func (r Resolver) localLogin(ctx context.Context, email, password string) (LoginResult, bool) {
	profile, err := r.Users.GetByEmail(ctx, email)
	if err != nil || !r.Users.VerifyPassword(profile, password) {
		return LoginResult{}, false
	}

	identity := ResolvedIdentity{
		ID:     profile.ID,
		Email:  profile.Email,
		Name:   profile.Name,
		Role:   profile.Role,
		Source: SourceLocalToken,
	}
	token, expiry, terr := r.Tokens.Issue(identity)
	if terr != nil {
		return LoginResult{}, false
	}

	utils.LogEvent(r.RequestID, "auth", "local_login", "user="+profile.ID)
	return LoginResult{
		User: profile.ToPublic(),
		Session: Session{
			AccessToken: token,
			TokenType:   "bearer",
			ExpiresAt:   expiry,
		},
		Source: SourceLocalToken,
	}, true
}

func (r Resolver) demoLogin(email string) (LoginResult, error) {
	now := time.Now()
	identity := ResolvedIdentity{
		ID:     "demo_admin",
		Email:  email,
		Name:   "Admin User",
		Role:   models.RoleSuperAdmin,
		Source: SourceDemo,
	}

	token, expiry, err := r.Tokens.Issue(identity)
	if err != nil {
		return LoginResult{}, domain.UnauthorizedError{Msg: "invalid credentials", Err: err}
	}

	utils.LogEvent(r.RequestID, "auth", "demo_login", "demo credentials accepted")
	return LoginResult{
		User: models.PublicUser{
			ID:        identity.ID,
			Email:     identity.Email,
			Name:      identity.Name,
			Role:      identity.Role,
			UserType:  models.RoleSuperAdmin,
			Status:    "active",
			CreatedAt: now,
			UpdatedAt: now,
		},
		Session: Session{
			AccessToken: token,
			TokenType:   "bearer",
			ExpiresAt:   expiry,
		},
		Source: SourceDemo,
	}, nil
}
