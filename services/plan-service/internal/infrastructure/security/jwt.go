package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"learnboard/services/plan-service/internal/domain"
)

// Claims is what an access token vouches for.
type Claims struct {
	Username string
	UserID   int64
}

type TokenManager struct {
	accessSecret []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewTokenManager(accessSecret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret: []byte(accessSecret),
		ttl:          ttl,
		now:          time.Now,
	}
}

func (m *TokenManager) Generate(username string, userID int64) (string, error) {
	at := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     username,
		"user_id": userID,
		"exp":     m.now().Add(m.ttl).Unix(),
	})
	return at.SignedString(m.accessSecret)
}

// Validate checks signature and expiry. Every failure wraps domain.ErrInvalidToken.
func (m *TokenManager) Validate(tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.accessSecret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, domain.ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}
	userID, _ := claims["user_id"].(float64)
	return Claims{Username: sub, UserID: int64(userID)}, nil
}
