package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"financetracker/internal/models"
)

type EmailVerificationRepository interface {
	Create(v *models.EmailVerification) (int64, error)
	FindValid(email, code string, now time.Time) (*models.EmailVerification, error)
	Delete(id int64) error
}

type emailVerificationRepository struct {
	DB *sql.DB
}

func NewEmailVerificationRepository(db *sql.DB) EmailVerificationRepository {
	return &emailVerificationRepository{DB: db}
}

// Create — каждая заявка на регистрацию это новая строка, уникальность по
// email не навязываем (матчинг всё равно идёт по паре email+code).
func (r *emailVerificationRepository) Create(v *models.EmailVerification) (int64, error) {
	const q = `
		INSERT INTO email_verifications (email, code, password, name, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	if err := r.DB.QueryRow(q, v.Email, v.Code, v.Password, v.Name, v.ExpiresAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("email_verification create: %w", err)
	}
	v.ID = id
	return id, nil
}

// FindValid — просроченные строки просто не матчатся, чисткой не занимаемся.
func (r *emailVerificationRepository) FindValid(email, code string, now time.Time) (*models.EmailVerification, error) {
	const q = `
		SELECT id, email, code, password, name, expires_at
		FROM email_verifications
		WHERE email = $1 AND code = $2 AND expires_at > $3
		LIMIT 1
	`
	row := r.DB.QueryRow(q, email, code, now)
	var v models.EmailVerification
	if err := row.Scan(&v.ID, &v.Email, &v.Code, &v.Password, &v.Name, &v.ExpiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("email_verification find: %w", err)
	}
	return &v, nil
}

func (r *emailVerificationRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM email_verifications WHERE id=$1`, id)
	return err
}
