package utils // package utils provides helper functions for token creation and credential checks

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and verifying signed tokens

	"github.com/wizonweb/wizon-server/internal/model"
)

// Verification failures.  ErrExpiredToken is kept apart so the gate can
// tell the dashboard to log in again rather than report a bad token.
var (
	ErrExpiredToken = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// AdminClaims is the claim set embedded in an admin session token.
type AdminClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AccessToken represents a signed session token along with its expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenCodec issues and verifies HS256 admin session tokens bound to a
// fixed issuer/audience pair.  The session itself lives only in the token;
// nothing is stored server-side.
type TokenCodec struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenCodec builds a codec.  ttl bounds every issued token's lifetime.
func NewTokenCodec(secret, issuer, audience string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock replaces the time source.  Used by tests to move past expiry.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	c.now = now
	return c
}

// TTL returns the lifetime given to issued tokens.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue signs a token for the admin identified by email.  The caller must
// already have checked the credentials.
func (c *TokenCodec) Issue(email string) (AccessToken, error) {
	return c.sign(AdminClaims{Role: model.RoleAdmin, Email: email})
}

// sign fills the registered claims and signs.  Role is taken from claims
// so tests can mint tokens for other roles.
func (c *TokenCodec) sign(claims AdminClaims) (AccessToken, error) {
	now := c.now().UTC()
	exp := now.Add(c.ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Audience:  jwt.ClaimStrings{c.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// Verify checks signature, expiry, issuer and audience, and returns the
// identity carried by the token.  It does not check the role; that is the
// gate's decision.
func (c *TokenCodec) Verify(raw string) (model.AdminIdentity, error) {
	var claims AdminClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.AdminIdentity{}, ErrExpiredToken
		}
		return model.AdminIdentity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Email == "" {
		return model.AdminIdentity{}, fmt.Errorf("%w: email claim missing", ErrInvalidToken)
	}
	return model.AdminIdentity{Email: claims.Email, Role: claims.Role}, nil
}
