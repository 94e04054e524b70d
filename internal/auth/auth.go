package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const TokenExp = time.Hour * 3

var ErrEmptyAuthHeader = errors.New("empty authorization header")

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

func BearerHeader(token string) string {
	return fmt.Sprintf("Bearer %s", token)
}

func TokenFromHeader(header string) (string, error) {
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	if tokenString == "" {
		return "", ErrEmptyAuthHeader
	}

	return tokenString, nil
}

// ExpiresAt reads the exp claim without verifying the signature. The client
// never holds the signing key, it only needs to know when to stop sending a
// token.
func ExpiresAt(tokenString string) (time.Time, bool) {
	claims := &Claims{}

	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}

// Expired reports whether a JWT is past its exp claim. Opaque tokens and
// tokens without exp never expire locally.
func Expired(tokenString string, now time.Time) bool {
	exp, ok := ExpiresAt(tokenString)
	if !ok {
		return false
	}

	return !now.Before(exp)
}

func BuildJWTString(subject, email, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Email: email,
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ClaimsFromAuthHeader verifies a bearer header signed with secret.
func ClaimsFromAuthHeader(header, secret string) (*Claims, error) {
	tokenString, err := TokenFromHeader(header)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}
