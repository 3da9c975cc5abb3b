package api

import (
	"context"
	"net/http"

	"agrigest/internal/types"
)

// AuthService is the facade for /auth/*. Register and Login are the
// only unauthenticated calls in the client.
type AuthService struct {
	c *Client
}

// Credentials are the login form fields.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the signup payload.
type Registration struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Password         string `json:"password"`
	PasswordConfirm  string `json:"password_confirm"`
	Telephone        string `json:"telephone,omitempty"`
	TypeAgriculture  string `json:"type_agriculture,omitempty"`
	ZoneGeographique string `json:"zone_geographique,omitempty"`
}

// LoginResponse is the token + user pair returned by login.
type LoginResponse struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

// Register creates a new account.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*types.User, error) {
	var user types.User
	if err := s.c.do(ctx, http.MethodPost, "/auth/register/", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a token and profile snapshot.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var resp LoginResponse
	if err := s.c.do(ctx, http.MethodPost, "/auth/login/", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the server-side token. Callers clear local state
// regardless of the outcome.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.c.do(ctx, http.MethodPost, "/auth/logout/", nil, nil)
}

// Profile fetches the current user.
func (s *AuthService) Profile(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := s.c.do(ctx, http.MethodGet, "/auth/profile/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile patches the current user and returns the stored profile.
func (s *AuthService) UpdateProfile(ctx context.Context, fields map[string]any) (*types.User, error) {
	var user types.User
	if err := s.c.do(ctx, http.MethodPatch, "/auth/profile/", fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
