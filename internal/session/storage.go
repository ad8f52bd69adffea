package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStorage is the durable slot holding the bearer token. Load returns
// an empty string when no token is stored.
type TokenStorage interface {
	Save(token string) error
	Load() (string, error)
	Delete() error
}

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// FileStorage keeps the token in token.json under a config directory.
type FileStorage struct {
	dir string
}

// NewFileStorage stores under dir, or under the platform config directory
// ($XDG_CONFIG_HOME/fracturas or ~/.config/fracturas) when dir is empty.
func NewFileStorage(dir string) *FileStorage {
	if dir == "" {
		dir = defaultDir()
	}
	return &FileStorage{dir: dir}
}

func defaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "fracturas")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fracturas")
}

func (s *FileStorage) path() string { return filepath.Join(s.dir, "token.json") }

func (s *FileStorage) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{AccessToken: token, ExpiresAt: tokenExpiry(token)})
}

func (s *FileStorage) Load() (string, error) {
	b, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if tf.AccessToken == "" {
		return "", nil
	}
	// A token past its recorded expiry is as good as absent.
	if !tf.ExpiresAt.IsZero() && time.Now().After(tf.ExpiresAt) {
		return "", nil
	}
	return tf.AccessToken, nil
}

func (s *FileStorage) Delete() error {
	err := os.Remove(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// tokenExpiry extracts the exp claim when the token happens to be a JWT.
// The token is otherwise opaque; a zero time means no local expiry.
func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Time{}
}
