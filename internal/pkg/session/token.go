package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
)

// Claims is the content of a session token. RegisteredClaims.ID holds the session id.
type Claims struct {
	UserID   string `json:"uid"`
	Username string `json:"usr"`
	jwt.RegisteredClaims
}

// TokenSigner signs and verifies session tokens with the session secret
type TokenSigner struct {
	secret []byte
	issuer string
}

// NewTokenSigner creates a signer for HS256 tokens
func NewTokenSigner(secret, issuer string) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), issuer: issuer}
}

// Sign issues a token naming the session
func (t *TokenSigner) Sign(s *Session) (string, error) {
	claims := &Claims{
		UserID:   s.UserID,
		Username: s.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   s.UserID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
			NotBefore: jwt.NewNumericDate(s.CreatedAt.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns its claims
func (t *TokenSigner) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(t.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, apperrors.ErrTokenInvalid
	}
	return claims, nil
}
