package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kracgan/student-management-frontend/pkg/model"
)

// AuthService is the authentication surface the session manager requires.
type AuthService interface {
	// Login exchanges credentials for a token and an identity record.
	Login(ctx context.Context, username, password string) (string, *model.Identity, error)
	// CurrentUser resolves the identity behind a bearer token.
	CurrentUser(ctx context.Context, token string) (*model.Identity, error)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  model.Identity `json:"user"`
}

// Login calls the backend login endpoint.
func (c *Client) Login(ctx context.Context, username, password string) (string, *model.Identity, error) {
	var out loginResponse
	_, err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{
		Username: username,
		Password: password,
	}, &out)
	if err != nil {
		return "", nil, err
	}
	return out.Token, &out.User, nil
}

// CurrentUser fetches the identity for the given token.
func (c *Client) CurrentUser(ctx context.Context, token string) (*model.Identity, error) {
	var out model.Identity
	if _, err := c.WithToken(token).do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TokenExpiry reads the expiry claim from a backend JWT without verifying
// the signature (verification is the backend's job; the front end only
// bounds session lifetime with it). Returns the zero time for opaque or
// malformed tokens.
func TokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
