package offerclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore persists the access and refresh tokens issued by the identity
// provider. Tokens are opaque here; validation happens server side.
type TokenStore interface {
	Save(access, refresh string) error
	AccessToken() (string, error)
	RefreshToken() (string, error)
	Destroy() error
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type memoryTokenStore struct {
	mu   sync.RWMutex
	pair tokenPair
}

func NewMemoryTokenStore() TokenStore {
	return &memoryTokenStore{}
}

func (m *memoryTokenStore) Save(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = tokenPair{AccessToken: access, RefreshToken: refresh}
	return nil
}

func (m *memoryTokenStore) AccessToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pair.AccessToken, nil
}

func (m *memoryTokenStore) RefreshToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pair.RefreshToken, nil
}

func (m *memoryTokenStore) Destroy() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = tokenPair{}
	return nil
}

// FileTokenStore keeps tokens in a JSON file readable only by the owner.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// DefaultTokenPath is offerctl/tokens.json under the user config directory.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "offerctl", "tokens.json"), nil
}

func (f *FileTokenStore) Save(access, refresh string) error {
	raw, err := json.Marshal(tokenPair{AccessToken: access, RefreshToken: refresh})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("write tokens: %w", err)
	}
	return nil
}

func (f *FileTokenStore) AccessToken() (string, error) {
	p, err := f.load()
	return p.AccessToken, err
}

func (f *FileTokenStore) RefreshToken() (string, error) {
	p, err := f.load()
	return p.RefreshToken, err
}

func (f *FileTokenStore) Destroy() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove tokens: %w", err)
	}
	return nil
}

// load returns an empty pair when the file does not exist yet.
func (f *FileTokenStore) load() (tokenPair, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tokenPair{}, nil
		}
		return tokenPair{}, fmt.Errorf("read tokens: %w", err)
	}
	var p tokenPair
	if err := json.Unmarshal(raw, &p); err != nil {
		return tokenPair{}, fmt.Errorf("decode tokens: %w", err)
	}
	return p, nil
}
