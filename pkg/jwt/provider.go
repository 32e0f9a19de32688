package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified identity attached to a request. Subject is the
// owning user identifier for every catalog operation.
type Claims struct {
	Subject string
	Email   string
}

// Provider verifies HS256 bearer tokens against the shared secret the
// identity provider signs with. It can also mint tokens, which the service
// itself only needs for tests and local tooling.
type Provider struct {
	Secret    string
	AccessTTL time.Duration
}

func NewProvider(secret string, accessTTL time.Duration) *Provider {
	return &Provider{
		Secret:    secret,
		AccessTTL: accessTTL,
	}
}

func (p *Provider) GenerateAccessToken(subject, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"exp":   time.Now().Add(p.AccessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

// ParseAccessToken verifies signature, algorithm and expiry, and extracts
// the subject. Any failure collapses to ErrInvalidToken so callers cannot
// distinguish why a credential was rejected.
func (p *Provider) ParseAccessToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(p.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return Claims{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)

	return Claims{
		Subject: subject,
		Email:   email,
	}, nil
}
