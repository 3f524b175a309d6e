package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financetracker/internal/models"
)

type stubUserRepo struct {
	users     map[string]*models.User
	nextID    int
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*models.User{}, nextID: 1}
}

func (s *stubUserRepo) Create(user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.users[user.Email]; ok {
		return errors.New("duplicate key value violates unique constraint")
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.Email] = user
	return nil
}

func (s *stubUserRepo) GetByID(id int) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) GetByEmail(email string) (*models.User, error) {
	return s.users[email], nil
}

func (s *stubUserRepo) UpdateName(id int, name string) error {
	for _, u := range s.users {
		if u.ID == id {
			u.Name = name
		}
	}
	return nil
}

func (s *stubUserRepo) Delete(id int) error { return nil }

type stubVerifRepo struct {
	records []*models.EmailVerification
	nextID  int64
}

func (s *stubVerifRepo) Create(v *models.EmailVerification) (int64, error) {
	s.nextID++
	v.ID = s.nextID
	s.records = append(s.records, v)
	return v.ID, nil
}

func (s *stubVerifRepo) FindValid(email, code string, now time.Time) (*models.EmailVerification, error) {
	for _, r := range s.records {
		if r.Email == email && r.Code == code && r.ExpiresAt.After(now) {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubVerifRepo) Delete(id int64) error {
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type stubEmailService struct {
	sent    []string // коды в порядке отправки
	sendErr error
}

func (s *stubEmailService) SendVerificationCode(email, code string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, code)
	return nil
}

func newRegistrationFixture() (*registrationService, *stubUserRepo, *stubVerifRepo, *stubEmailService) {
	users := newStubUserRepo()
	verifs := &stubVerifRepo{}
	emails := &stubEmailService{}
	auth := NewAuthService(users, "test-secret", time.Hour)
	svc := &registrationService{
		users:  users,
		verifs: verifs,
		emails: emails,
		auth:   auth,
		now:    time.Now,
	}
	return svc, users, verifs, emails
}

func TestBeginThenConfirmCreatesVerifiedUser(t *testing.T) {
	svc, users, verifs, emails := newRegistrationFixture()

	err := svc.BeginRegistration("ivan@example.com", "secret123", "Ivan")
	require.NoError(t, err)
	require.Len(t, emails.sent, 1)
	code := emails.sent[0]
	assert.Len(t, code, 6)

	userID, err := svc.Confirm("ivan@example.com", code)
	require.NoError(t, err)
	assert.Greater(t, userID, 0)

	user, _ := users.GetByEmail("ivan@example.com")
	require.NotNil(t, user)
	assert.True(t, user.IsVerified)
	assert.Equal(t, "Ivan", user.Name)
	// пароль не хранится открытым
	assert.NotEqual(t, "secret123", user.PasswordHash)

	// код одноразовый
	assert.Empty(t, verifs.records)
	_, err = svc.Confirm("ivan@example.com", code)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestConfirmWrongCode(t *testing.T) {
	svc, _, _, emails := newRegistrationFixture()

	require.NoError(t, svc.BeginRegistration("ivan@example.com", "secret123", "Ivan"))
	wrong := "000000"
	if emails.sent[0] == wrong {
		wrong = "000001"
	}
	_, err := svc.Confirm("ivan@example.com", wrong)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestConfirmExpiredCodeFailsButRecordSurvives(t *testing.T) {
	svc, _, verifs, emails := newRegistrationFixture()

	require.NoError(t, svc.BeginRegistration("ivan@example.com", "secret123", "Ivan"))
	code := emails.sent[0]

	// сдвигаем часы за срок действия
	svc.now = func() time.Time { return time.Now().Add(verificationTTL + time.Minute) }

	_, err := svc.Confirm("ivan@example.com", code)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
	// строка не удалена, просто не матчится
	assert.Len(t, verifs.records, 1)
}

func TestBeginRegistrationAlreadyRegistered(t *testing.T) {
	svc, users, _, _ := newRegistrationFixture()

	require.NoError(t, users.Create(&models.User{Email: "taken@example.com", IsVerified: true}))

	err := svc.BeginRegistration("taken@example.com", "pw", "Someone")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestBeginRegistrationMailFailureKeepsPendingRecord(t *testing.T) {
	svc, _, verifs, emails := newRegistrationFixture()
	emails.sendErr = errors.New("smtp down")

	err := svc.BeginRegistration("ivan@example.com", "secret123", "Ivan")
	assert.ErrorIs(t, err, ErrMailDelivery)
	// запись уже в базе: дотлеет до expires_at
	assert.Len(t, verifs.records, 1)
}

func TestConfirmUserCreateFailureKeepsPendingRecord(t *testing.T) {
	svc, users, verifs, emails := newRegistrationFixture()

	require.NoError(t, svc.BeginRegistration("ivan@example.com", "secret123", "Ivan"))
	code := emails.sent[0]

	users.createErr = errors.New("commit conflict")
	_, err := svc.Confirm("ivan@example.com", code)
	require.Error(t, err)
	// запись цела, можно повторить подтверждение
	assert.Len(t, verifs.records, 1)

	users.createErr = nil
	userID, err := svc.Confirm("ivan@example.com", code)
	require.NoError(t, err)
	assert.Greater(t, userID, 0)
}

func TestGenerateCodeFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := generateCode()
		require.Len(t, code, 6)
		for _, ch := range code {
			assert.True(t, ch >= '0' && ch <= '9')
		}
	}
}
