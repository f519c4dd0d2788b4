package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"curalink.io/coordination-service/internal/identity"
)

// TokenIssuer mints and verifies the HS256 bearer tokens through which the
// hosting runtime hands a verified caller identity to the service.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Mint signs a token whose subject is the given caller identity.
func (i *TokenIssuer) Mint(subject string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify validates a token and returns the caller principal from its
// subject claim.
func (i *TokenIssuer) Verify(tokenString string) (identity.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return identity.Anonymous, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return identity.Anonymous, fmt.Errorf("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return identity.Anonymous, fmt.Errorf("token has no subject")
	}
	return identity.Principal(sub), nil
}
