package auth

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"

	model "player-auction/internal/models"
)

// Claims is what the rest of the system reads out of a bearer token.
type Claims struct {
	Username string
	Role     model.Role
	TeamID   string
}

// TokenProvider issues and verifies HS256 bearer tokens. Tokens are signed,
// not encrypted: the payload is readable, the signature prevents tampering.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenProvider creates a provider signing with secret, issuing tokens
// valid for ttl.
func NewTokenProvider(secret string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{secret: []byte(secret), ttl: ttl}
}

// Generate issues a token for the user with sub, role and team claims.
func (p *TokenProvider) Generate(user model.User) (string, error) {
	if len(p.secret) == 0 {
		return "", fmt.Errorf("jwt secret is not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(p.ttl).Unix(),
	}
	if user.TeamID != "" {
		claims["team_id"] = user.TeamID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Parse verifies the token's signature and expiry and extracts its claims.
func (p *TokenProvider) Parse(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return Claims{}, fmt.Errorf("token is not valid")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	claims := Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Username = sub
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = model.Role(role)
	}
	if teamID, ok := mapClaims["team_id"].(string); ok {
		claims.TeamID = teamID
	}
	if claims.Username == "" {
		return Claims{}, fmt.Errorf("token has no subject")
	}
	return claims, nil
}
