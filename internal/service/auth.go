package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Somethings1/fintrack-sub000/internal/api"
	"github.com/Somethings1/fintrack-sub000/internal/repo/fs"
)

// ErrSessionExpired means the stored token's expiry has passed; the user has
// to log in again before the sync core can talk to the backend.
var ErrSessionExpired = errors.New("session expired, please log in again")

// AuthService covers the credential contract the cache layer depends on:
// obtaining the auth_token cookie, persisting it, and knowing when it is no
// longer worth presenting. The backend's auth internals stay opaque.
type AuthService struct {
	client  *api.Client
	session fs.SessionStore
}

func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login signs in and persists the auth cookie and username.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	resp, err := s.post(ctx, "/auth/signin", credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	if err := s.persistAuthCookie(resp); err != nil {
		return err
	}
	return s.session.SaveUsername(username)
}

// Register creates the account, then persists credentials like Login.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	resp, err := s.post(ctx, "/auth/signup", credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	if err := s.persistAuthCookie(resp); err != nil {
		return err
	}
	return s.session.SaveUsername(username)
}

// Refresh asks the backend for a fresh auth cookie using the current one.
// On success the new token replaces the stored one.
func (s *AuthService) Refresh(ctx context.Context) error {
	resp, err := s.post(ctx, "/auth/refresh", nil)
	if err != nil {
		return err
	}
	return s.persistAuthCookie(resp)
}

// Logout tells the backend and clears the local session files. A backend
// failure still clears locally; an unreachable server must not keep the
// client logged in.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.client.Do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		s.session.Clear()
		return err
	}
	return s.session.Clear()
}

// ActiveUser returns the logged-in username after checking that the stored
// token has not expired. The token is parsed unverified — the signature is
// the server's concern, the client only peeks at exp to fail fast.
func (s *AuthService) ActiveUser() (string, error) {
	username, err := s.session.LoadUsername()
	if err != nil {
		return "", errors.New("not logged in: run login first")
	}
	token, err := s.session.LoadToken()
	if err != nil {
		return "", errors.New("not logged in: run login first")
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Opaque (non-JWT) tokens pass through; the server decides.
		return username, nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return username, nil
	}
	if exp.Before(time.Now()) {
		return "", ErrSessionExpired
	}
	return username, nil
}

func (s *AuthService) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	req, err := s.client.NewRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &api.StatusError{Status: resp.StatusCode, Body: fmt.Sprintf("auth call %s rejected", path)}
	}
	return resp, nil
}

// persistAuthCookie extracts the auth_token cookie from the response and
// saves it through the session store.
func (s *AuthService) persistAuthCookie(resp *http.Response) error {
	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" && c.Value != "" {
			return s.session.SaveToken(c.Value)
		}
	}
	return errors.New("no auth cookie in response")
}
