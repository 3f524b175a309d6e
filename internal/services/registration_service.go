package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"financetracker/internal/models"
	"financetracker/internal/repositories"
)

var (
	ErrAlreadyRegistered    = errors.New("email already registered")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	ErrMailDelivery         = errors.New("mail delivery failed")
)

const verificationTTL = 10 * time.Minute

type RegistrationService interface {
	BeginRegistration(email, password, name string) error
	Confirm(email, code string) (int, error)
}

type registrationService struct {
	users  repositories.UserRepository
	verifs repositories.EmailVerificationRepository
	emails EmailService
	auth   AuthService
	now    func() time.Time
}

func NewRegistrationService(
	users repositories.UserRepository,
	verifs repositories.EmailVerificationRepository,
	emails EmailService,
	auth AuthService,
) RegistrationService {
	return &registrationService{
		users:  users,
		verifs: verifs,
		emails: emails,
		auth:   auth,
		now:    time.Now,
	}
}

func generateCode() string {
	src := rand.NewSource(time.Now().UnixNano())
	rnd := rand.New(src)
	return fmt.Sprintf("%06d", rnd.Intn(1000000))
}

// BeginRegistration — создаёт временную запись с кодом и отправляет код на
// почту. Запись пишется до отправки: упавшее письмо оставляет строку
// дотлевать до expires_at, повторный запрос просто выдаст новый код.
func (s *registrationService) BeginRegistration(email, password, name string) error {
	email = strings.TrimSpace(email)

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyRegistered
	}

	code := generateCode()
	rec := &models.EmailVerification{
		Email:     email,
		Code:      code,
		Password:  password,
		Name:      name,
		ExpiresAt: s.now().Add(verificationTTL),
	}
	if _, err := s.verifs.Create(rec); err != nil {
		return err
	}
	log.Printf("[register][request] pending record created email=%q expires_at=%s",
		email, rec.ExpiresAt.Format(time.RFC3339))

	if err := s.emails.SendVerificationCode(email, code); err != nil {
		log.Printf("[register][request] send failed email=%q: %v", email, err)
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// Confirm — матчим строго по паре (email, code) с живым сроком. "Не тот код"
// и "просрочен" не различаем. Запись удаляется только после успешного
// создания пользователя, иначе остаётся для повторной попытки.
func (s *registrationService) Confirm(email, code string) (int, error) {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)

	rec, err := s.verifs.FindValid(email, code, s.now())
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, ErrInvalidOrExpiredCode
	}

	hash, err := s.auth.HashPassword(rec.Password)
	if err != nil {
		return 0, err
	}
	user := &models.User{
		Email:        rec.Email,
		PasswordHash: hash,
		Name:         rec.Name,
		IsVerified:   true,
	}
	if err := s.users.Create(user); err != nil {
		return 0, err
	}

	if err := s.verifs.Delete(rec.ID); err != nil {
		// пользователь уже создан, код всё равно больше не сработает
		// (email занят) — только логируем
		log.Printf("[register][confirm] delete pending id=%d failed: %v", rec.ID, err)
	}
	log.Printf("[register][confirm] user created id=%d email=%q", user.ID, user.Email)
	return user.ID, nil
}
