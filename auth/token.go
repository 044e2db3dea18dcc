package auth

import (
	"chat-router/domain"
	"chat-router/errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleCustomer = "customer"
	RoleOperator = "operator"
)

// CustomClaims defines the structure of the data stored inside the JWT.
// SessionID is the chat id of a customer token.
type CustomClaims struct {
	UserID      string   `json:"user_id" validate:"required"`
	Roles       []string `json:"roles" validate:"required,min=1,dive,oneof=customer operator"`
	DisplayName string   `json:"name,omitempty"`
	Username    string   `json:"username,omitempty"`
	Picture     string   `json:"picture,omitempty"`
	Locale      string   `json:"locale,omitempty" validate:"omitempty,bcp47_language_tag"`
	Groups      []string `json:"groups,omitempty"`
	SessionID   string   `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

func (c CustomClaims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

func (c CustomClaims) Identity() domain.Identity {
	return domain.Identity{
		ID:          c.UserID,
		DisplayName: c.DisplayName,
		Username:    c.Username,
		Picture:     c.Picture,
		Locale:      c.Locale,
		Groups:      slices.Clone(c.Groups),
	}
}

// Issuer signs and validates tokens with a shared HS256 secret.
type Issuer struct {
	key      []byte
	duration time.Duration
}

func NewIssuer(secret string, duration time.Duration) *Issuer {
	return &Issuer{key: []byte(secret), duration: duration}
}

// GenerateToken creates a signed JWT for the identity; sessionID is only set for customers.
func (i *Issuer) GenerateToken(identity domain.Identity, roles []string, sessionID string) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID:      identity.ID,
		Roles:       roles,
		DisplayName: identity.DisplayName,
		Username:    identity.Username,
		Picture:     identity.Picture,
		Locale:      identity.Locale,
		Groups:      identity.Groups,
		SessionID:   sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "chat-router",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
}

// ValidateToken parses and validates the signature, the expiration and the claims of a JWT string.
func (i *Issuer) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return i.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.ErrInvalidToken
	}
	if err := ValidateClaims(*claims); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	return claims, nil
}
