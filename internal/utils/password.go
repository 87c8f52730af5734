package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any login mismatch.  It never says
// which field was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// AdminCredentials holds the single configured admin identity.  The
// password is kept only as a bcrypt hash computed at start-up.
type AdminCredentials struct {
	emailSum     [sha256.Size]byte
	passwordHash string
}

// NewAdminCredentials hashes the configured password with the given cost.
func NewAdminCredentials(email, password string, cost int) (*AdminCredentials, error) {
	hash, err := HashPassword(password, cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AdminCredentials{emailSum: sha256.Sum256([]byte(email)), passwordHash: hash}, nil
}

// Check compares both fields before deciding, so the response time does not
// reveal whether the email or the password was wrong.
func (a *AdminCredentials) Check(email, password string) error {
	sum := sha256.Sum256([]byte(email))
	emailOK := subtle.ConstantTimeCompare(sum[:], a.emailSum[:])
	passOK := 0
	if VerifyPassword(a.passwordHash, password) {
		passOK = 1
	}
	if emailOK&passOK != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
