package client

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// Session is what survives a process restart: the token pair and the
// device id minted at first login.
type Session struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	DeviceID string `json:"deviceId"`
}

// TokenStore persists the session to a single JSON file. All methods are
// safe for concurrent use.
type TokenStore struct {
	mu   sync.Mutex
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

func (s *TokenStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess Session
	bytes, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sess, nil
		}
		return sess, err
	}

	if err = json.Unmarshal(bytes, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *TokenStore) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bytes, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, bytes, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
