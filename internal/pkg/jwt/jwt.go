package jwt

import (
	"errors"
	"time"

	"tyreplus-backend/internal/domain/identity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type Claims struct {
	SubjectID uuid.UUID `json:"sub_id"`
	Role      string    `json:"role"`
	jwt.RegisteredClaims
}

// Service signs short-lived access tokens. Refresh tokens are opaque
// server-side records owned by the auth usecase, not JWTs.
type Service struct {
	secretKey      []byte
	accessDuration time.Duration
}

func NewService(secretKey string, accessDuration time.Duration) *Service {
	return &Service{
		secretKey:      []byte(secretKey),
		accessDuration: accessDuration,
	}
}

func (s *Service) GenerateAccessToken(subjectID uuid.UUID, role identity.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		SubjectID: subjectID,
		Role:      role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
