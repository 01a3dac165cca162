// pkg/token/token.go
package token

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/pitchside/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the structure of the JWT claims the service accepts.
type Claims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// ValidateJWT parses, validates, and returns claims from a JWT string.
func ValidateJWT(tokenString string, secretKey string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}
	if secretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, errors.New("token is not yet valid")
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, errors.New("token signature is invalid")
		}
		return nil, fmt.Errorf("could not parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is invalid")
	}

	if strings.TrimSpace(claims.UserID) == "" {
		return nil, errors.New("user_id claim is missing")
	}

	return claims, nil
}

// GenerateJWT signs an access token for userID.
func GenerateJWT(userID string, roles []string, secretKey, issuer string, expiry time.Duration) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("user id is empty")
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// Provider authenticates bearer credentials signed with a shared HMAC secret.
type Provider struct {
	secret string
}

func NewProvider(secret string) *Provider {
	return &Provider{secret: secret}
}

func (p *Provider) Authenticate(_ context.Context, credential string) (common.Principal, error) {
	claims, err := ValidateJWT(credential, p.secret)
	if err != nil {
		return common.Principal{}, err
	}
	return common.Principal{UserID: claims.UserID, Roles: claims.Roles}, nil
}
