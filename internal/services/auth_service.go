package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"financetracker/internal/models"
	"financetracker/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

type AuthService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(plain, hash string) bool
	Authenticate(email, password string) (*models.User, error)
	IssueToken(email string) (string, error)
	ResolveToken(tokenStr string) (*models.User, error)
	TokenTTL() time.Duration
}

type Claims struct {
	jwt.RegisteredClaims
}

type authService struct {
	users  repositories.UserRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users repositories.UserRepository, secret string, ttl time.Duration) AuthService {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &authService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// HashPassword — bcrypt принимает максимум 72 байта, остальное режем сами,
// чтобы поведение не зависело от версии библиотеки.
func (s *authService) HashPassword(password string) (string, error) {
	b := []byte(password)
	if len(b) > 72 {
		b = b[:72]
	}
	hash, err := bcrypt.GenerateFromPassword(b, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword — на битом хэше просто false, наружу ошибка не идёт.
func (s *authService) VerifyPassword(plain, hash string) bool {
	b := []byte(plain)
	if len(b) > 72 {
		b = b[:72]
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), b) == nil
}

// Authenticate — "нет такого email" и "не тот пароль" снаружи неразличимы.
func (s *authService) Authenticate(email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	user, err := s.users.GetByEmail(email)
	if err != nil {
		log.Printf("[auth][login] lookup failed email=%q: %v", email, err)
		return nil, err
	}
	if user == nil || !s.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) IssueToken(email string) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ResolveToken — подпись, срок и существование пользователя; любой сбой
// схлопывается в ErrUnauthorized.
func (s *authService) ResolveToken(tokenStr string) (*models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// принимаем только HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, ErrUnauthorized
	}
	user, err := s.users.GetByEmail(claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

func (s *authService) TokenTTL() time.Duration {
	return s.ttl
}
