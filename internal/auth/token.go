package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/resssoft/casefolio/internal/models"
)

type SessionState int

const (
	SessionAbsent SessionState = iota
	SessionValid
	SessionInvalid
)

// Session is the verified identity attached to a request. It is built per
// request from the bearer header and passed explicitly, never kept as global
// state.
type Session struct {
	State    SessionState
	UserID   string
	Username string
}

type tokenClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (m *TokenManager) Issue(user models.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID:   user.MongoID.Hex(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// SessionFrom verifies a raw bearer token. An empty token yields an absent
// session, a bad or expired one an invalid session.
func (m *TokenManager) SessionFrom(raw string) Session {
	if raw == "" {
		return Session{State: SessionAbsent}
	}
	parsed, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Session{State: SessionInvalid}
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return Session{State: SessionInvalid}
	}
	return Session{
		State:    SessionValid,
		UserID:   claims.UserID,
		Username: claims.Username,
	}
}
