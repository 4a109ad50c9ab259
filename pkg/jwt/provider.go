package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeAccess = "access"

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrInvalidSubject = errors.New("invalid subject")
)

// JWTProvider signs HS256 access tokens accepted by the mutating API routes.
type JWTProvider struct {
	Secret    string
	AccessTTL time.Duration
}

func NewJWTProvider(secret string, accessTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		Secret:    secret,
		AccessTTL: accessTTL,
	}
}

func (p *JWTProvider) GenerateAccessToken(subject string) (string, error) {
	if subject == "" {
		return "", ErrInvalidSubject
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": tokenTypeAccess,
		"iat":  now.Unix(),
		"exp":  now.Add(p.AccessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

// ParseAccessToken validates the signature, expiry and token type and
// returns the subject.
func (p *JWTProvider) ParseAccessToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(p.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if claimType, ok := claims["type"].(string); !ok || claimType != tokenTypeAccess {
		return "", ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidSubject
	}
	return subject, nil
}
