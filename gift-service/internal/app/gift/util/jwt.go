package util

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// JWTClaims содержимое токена участника. ID (jti) уникален для каждого токена
type JWTClaims struct {
	MemberID int64  `json:"member_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TTL оставшееся время жизни токена
func (c *JWTClaims) TTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return time.Until(c.ExpiresAt.Time)
}

type JWTManager struct {
	key    []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewJWTManager(secretKey string, accessDuration time.Duration) *JWTManager {
	return &JWTManager{
		key: []byte(secretKey),
		ttl: accessDuration,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// GenerateAccessToken выпускает HS256 токен участника. jti нужен для отзыва при logout
func (m *JWTManager) GenerateAccessToken(memberID int64, email string) (string, error) {
	now := time.Now()

	return jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		MemberID: memberID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(memberID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}).SignedString(m.key)
}

// ValidateToken проверяет подпись, алгоритм и срок. Истекший токен отличается от поддельного
func (m *JWTManager) ValidateToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	_, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return m.key, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil, claims.MemberID <= 0:
		return nil, ErrInvalidToken
	}
	return claims, nil
}
