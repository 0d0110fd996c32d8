package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusError is a non-2xx backend response. The status class drives how the
// failure is reported to the user: 5xx means try again later, 401 means the
// session needs a fresh login, anything else is unexpected.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Body)
}

// Unavailable reports a 5xx response.
func (e *StatusError) Unavailable() bool { return e.Status >= 500 }

// Unauthorized reports a 401 response.
func (e *StatusError) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

// TokenSource provides the current session credentials. Implemented by the
// session file store.
type TokenSource interface {
	LoadToken() (string, error)
	LoadClientID() string
}

// Client is a thin wrapper around net/http for the fintrack backend: JSON
// bodies, auth cookie, clientId header, context on every request.
type Client struct {
	ServerURL string
	HTTP      *http.Client
	Session   TokenSource
}

func New(serverURL string, session TokenSource) *Client {
	return &Client{ServerURL: serverURL, HTTP: http.DefaultClient, Session: session}
}

// NewRequest builds a request with the standard auth cookie, clientId
// header and JSON body. Exposed for callers that need the raw response
// (e.g. to read Set-Cookie).
func (c *Client) NewRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.ServerURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Session != nil {
		if token, err := c.Session.LoadToken(); err == nil && token != "" {
			req.Header.Set("Cookie", "auth_token="+token)
		}
		if id := c.Session.LoadClientID(); id != "" {
			req.Header.Set("clientId", id)
		}
	}
	return req, nil
}

// Do issues the request and decodes a 2xx JSON response into out (when out is
// non-nil). Non-2xx responses come back as *StatusError.
func (c *Client) Do(ctx context.Context, method, path string, payload, out any) error {
	req, err := c.NewRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, Body: string(body)}
	}
	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}

// GetStream issues a GET and hands the caller the open response body for
// incremental decoding. Non-2xx responses are drained, closed and returned as
// *StatusError; nothing is committed from them.
func (c *Client) GetStream(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}
	return resp.Body, nil
}
