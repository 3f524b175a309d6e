package repositories

import (
	"database/sql"
	"time"

	"financetracker/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateName(id int, name string) error
	Delete(id int) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (email, password_hash, name, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	return r.DB.QueryRow(q,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.IsVerified,
		user.CreatedAt,
	).Scan(&user.ID)
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `
		SELECT id, email, password_hash, name, is_verified, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, email, password_hash, name, is_verified, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRow(q, email))
}

// scanOne — nil без ошибки, если строки нет (решение "нашли/не нашли"
// принимает сервис).
func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.IsVerified, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) UpdateName(id int, name string) error {
	_, err := r.DB.Exec(`UPDATE users SET name=$1 WHERE id=$2`, name, id)
	return err
}

func (r *userRepository) Delete(id int) error {
	// транзакции уходят каскадом (FK ON DELETE CASCADE)
	_, err := r.DB.Exec(`DELETE FROM users WHERE id=$1`, id)
	return err
}
