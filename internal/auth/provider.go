package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rentalprima/internal/domain"
)

// ProviderUser is the subject confirmed by the hosted identity provider.
type ProviderUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ProviderSession is the session payload returned by the provider on
// sign-in or sign-up.
type ProviderSession struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresAt    int64        `json:"expires_at"`
	RefreshToken string       `json:"refresh_token"`
	User         ProviderUser `json:"user"`
}

// ProviderClient talks to the hosted identity provider over HTTP. The
// timeout is applied to every outbound call; a single failed attempt
// is terminal for the request, no retries.
type ProviderClient struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewProviderClient(baseURL, anonKey string, timeout time.Duration) *ProviderClient {
	return &ProviderClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		anonKey: strings.TrimSpace(anonKey),
		client:  &http.Client{Timeout: timeout},
	}
}

// GetUser verifies an access token and returns the subject it belongs to.
func (c *ProviderClient) GetUser(ctx context.Context, accessToken string) (ProviderUser, error) {
	var user ProviderUser
	err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &user)
	if err != nil {
		return ProviderUser{}, err
	}
	if user.ID == "" {
		return ProviderUser{}, domain.ProviderError{Op: "get_user", Err: errors.New("empty subject in response")}
	}
	return user, nil
}

// SignInWithPassword exchanges credentials for a provider session.
func (c *ProviderClient) SignInWithPassword(ctx context.Context, email, password string) (ProviderSession, error) {
	body := map[string]string{"email": email, "password": password}
	var session ProviderSession
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &session); err != nil {
		return ProviderSession{}, err
	}
	if session.AccessToken == "" || session.User.ID == "" {
		return ProviderSession{}, domain.ProviderError{Op: "sign_in", Err: errors.New("incomplete session in response")}
	}
	return session, nil
}

// SignUp registers a new identity with the provider.
func (c *ProviderClient) SignUp(ctx context.Context, email, password string) (ProviderSession, error) {
	body := map[string]string{"email": email, "password": password}
	var session ProviderSession
	if err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", body, &session); err != nil {
		return ProviderSession{}, err
	}
	if session.User.ID == "" {
		return ProviderSession{}, domain.ProviderError{Op: "sign_up", Err: errors.New("no subject in response")}
	}
	return session, nil
}

// SignOut revokes the session behind the given access token.
func (c *ProviderClient) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
}

func (c *ProviderClient) do(ctx context.Context, method, path, accessToken string, body, out any) error {
	op := strings.TrimLeft(path, "/")
	if c.baseURL == "" {
		return domain.ProviderError{Op: op, Err: errors.New("provider not configured")}
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return domain.ProviderError{Op: op, Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return domain.ProviderError{Op: op, Err: err}
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.ProviderError{Op: op, Status: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.ProviderError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
