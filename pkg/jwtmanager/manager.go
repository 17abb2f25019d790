package jwtmanager

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret        = errors.New("jwtmanager: empty secret key")
	ErrInvalidSigningAlgo = errors.New("jwtmanager: unexpected signing method")
	ErrInvalidToken       = errors.New("jwtmanager: invalid token")
)

// Claims полезная нагрузка токена доступа
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwtlib.RegisteredClaims
}

// Manager выпускает и проверяет HS256 токены
type Manager struct {
	secret    []byte
	accessTTL time.Duration
	issuer    string
	now       func() time.Time
}

// NewManager создает менеджер токенов
func NewManager(secret string, accessTTL time.Duration, issuer string) (*Manager, error) {
	s := strings.TrimSpace(secret)
	if s == "" {
		return nil, ErrEmptySecret
	}

	return &Manager{
		secret:    []byte(s),
		accessTTL: accessTTL,
		issuer:    issuer,
		now:       time.Now,
	}, nil
}

// Issue возвращает подписанный токен для пользователя и время его истечения
func (m *Manager) Issue(userID int64, email string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.accessTTL)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwtmanager: sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseAndValidate проверяет подпись, алгоритм и срок действия токена
func (m *Manager) ParseAndValidate(tokenString string) (*Claims, error) {
	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(m.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (any, error) {
		if t.Method != jwtlib.SigningMethodHS256 {
			return nil, ErrInvalidSigningAlgo
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// FromAuthorization извлекает токен из значения заголовка "Bearer <token>"
func FromAuthorization(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
