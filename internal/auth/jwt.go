// Package auth verifies bearer tokens and exposes the decoded caller
// identity to request handlers.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"evalgo.org/hostreg/internal/config"
	"evalgo.org/hostreg/models"
)

var (
	// ErrInvalidToken is returned when a JWT token is invalid
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a JWT token has expired
	ErrExpiredToken = errors.New("token has expired")
)

// Subject is a token subject. Issuers emit it either as a string or as a
// number; both decode to the string form.
type Subject string

// UnmarshalJSON accepts JSON strings and numbers.
func (s *Subject) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Subject(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("sub must be a string or number: %w", err)
	}
	*s = Subject(num.String())
	return nil
}

// Scopes holds capability lists per application.
type Scopes struct {
	PWA []string `json:"pwa,omitempty"`
}

// Claims represents the JWT claims consumed by the registry.
type Claims struct {
	Sub    Subject `json:"sub"`
	Scopes Scopes  `json:"scopes"`
	jwt.RegisteredClaims
}

// Identity converts the claims into the caller identity.
func (c *Claims) Identity() *models.Identity {
	return &models.Identity{
		Sub:    string(c.Sub),
		Scopes: append([]string(nil), c.Scopes.PWA...),
	}
}

// JWTService signs and verifies HS256 tokens.
type JWTService struct {
	secret []byte
	issuer string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Security.JWTSecret),
		issuer: cfg.Security.JWTIssuer,
	}
}

// GenerateToken signs a token for sub carrying the given pwa scopes.
func (s *JWTService) GenerateToken(sub string, scopes []string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Sub:    Subject(sub),
		Scopes: Scopes{PWA: scopes},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Sub == "" {
		return nil, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}
	return claims, nil
}
