package auth

import (
	"errors"
	"os"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/wigilabs/timeledger/internal/models"
)

// Session identifies the logged-in user between invocations. It is a
// convenience for the CLI, not an auth boundary: anyone with access to
// the data directory already has the database.
type Session struct {
	Username string
	Manager  bool
}

// ErrNoSession is returned when no valid login is persisted.
var ErrNoSession = errors.New("not logged in")

const sessionTTL = 12 * time.Hour

type sessionClaims struct {
	Username string `json:"username"`
	Manager  bool   `json:"manager"`
	jwt.RegisteredClaims
}

// Save signs a session token for user and writes it to path.
func Save(path, secret string, user *models.User) error {
	claims := sessionClaims{
		Username: user.Username,
		Manager:  user.Manager,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(signed), 0600)
}

// Load reads and validates the persisted session token. Any failure
// (missing file, bad signature, expiry) comes back as ErrNoSession.
func Load(path, secret string) (*Session, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrNoSession
	}

	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(string(raw), &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid || claims.Username == "" {
		return nil, ErrNoSession
	}

	return &Session{Username: claims.Username, Manager: claims.Manager}, nil
}

// Clear removes the persisted session, if any.
func Clear(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
