package fs

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SessionStore keeps the auth token, the active username and the
// socket-assigned client id in files under the user config dir. The client id
// is sent with mutation requests so the server can avoid echoing a client's
// own change back to it.
type SessionStore struct{}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "fintrack")
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

func readTrimmed(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	for len(b) > 0 {
		c := b[len(b)-1]
		if c == '\n' || c == '\r' || c == ' ' || c == '\t' {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	if len(b) == 0 {
		return "", errors.New("empty file: " + filepath.Base(path))
	}
	return string(b), nil
}

func write(name, value string) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(value), 0o600)
}

func read(name string) (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return readTrimmed(filepath.Join(dir, name))
}

// SaveToken stores the auth_token cookie value.
func (SessionStore) SaveToken(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	return write("auth_token", token)
}

// LoadToken reads the stored auth token.
func (SessionStore) LoadToken() (string, error) { return read("auth_token") }

// SaveUsername records which user is logged in.
func (SessionStore) SaveUsername(name string) error {
	if name == "" {
		return errors.New("empty username")
	}
	return write("username", name)
}

// LoadUsername returns the active user, or an error when nobody is logged in.
func (SessionStore) LoadUsername() (string, error) { return read("username") }

// SaveClientID persists the identity the socket's init message assigned.
func (SessionStore) SaveClientID(id string) error {
	if id == "" {
		return errors.New("empty client id")
	}
	return write("client_id", id)
}

// LoadClientID returns the stored client id, or "" when none was assigned yet.
func (SessionStore) LoadClientID() string {
	id, err := read("client_id")
	if err != nil {
		return ""
	}
	return id
}

// EnsureClientID returns the stored client id, minting and persisting a local
// uuid when none exists yet. The server-assigned id from the socket's init
// frame overwrites it on the first connection; until then mutations still
// carry a stable identity.
func (s SessionStore) EnsureClientID() (string, error) {
	if id := s.LoadClientID(); id != "" {
		return id, nil
	}
	id := uuid.NewString()
	if err := s.SaveClientID(id); err != nil {
		return "", err
	}
	return id, nil
}

// Clear removes the session files. Used on logout.
func (SessionStore) Clear() error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	var firstErr error
	for _, name := range []string{"auth_token", "username", "client_id"} {
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
