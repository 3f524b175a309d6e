package repositories

import (
	"database/sql"
	"time"

	"financetracker/internal/models"
)

type TransactionRepository interface {
	Store(tx *models.Transaction) error
	FindByOwner(ownerID int) ([]models.Transaction, error)
	FindByIDAndOwner(id int64, ownerID int) (*models.Transaction, error)
	FindByOwnerAndDateRange(ownerID int, from, to time.Time) ([]models.Transaction, error)
	Update(tx *models.Transaction) error
	Delete(id int64, ownerID int) (bool, error)
}

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Store(tx *models.Transaction) error {
	const q = `
		INSERT INTO transactions (owner_id, amount, category, note, type, date, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at`
	return r.db.QueryRow(q,
		tx.OwnerID, tx.Amount, tx.Category, tx.Note, tx.Type, tx.Date, tx.CreatedAt,
	).Scan(&tx.ID, &tx.CreatedAt)
}

func (r *transactionRepository) FindByOwner(ownerID int) ([]models.Transaction, error) {
	const q = `
		SELECT id, owner_id, amount, category, note, type, date, created_at
		FROM transactions
		WHERE owner_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// FindByIDAndOwner — владелец входит в предикат выборки: чужая транзакция
// неотличима от несуществующей.
func (r *transactionRepository) FindByIDAndOwner(id int64, ownerID int) (*models.Transaction, error) {
	const q = `
		SELECT id, owner_id, amount, category, note, type, date, created_at
		FROM transactions
		WHERE id = $1 AND owner_id = $2`
	t := &models.Transaction{}
	err := r.db.QueryRow(q, id, ownerID).Scan(
		&t.ID, &t.OwnerID, &t.Amount, &t.Category, &t.Note, &t.Type, &t.Date, &t.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *transactionRepository) FindByOwnerAndDateRange(ownerID int, from, to time.Time) ([]models.Transaction, error) {
	const q = `
		SELECT id, owner_id, amount, category, note, type, date, created_at
		FROM transactions
		WHERE owner_id = $1 AND date >= $2 AND date <= $3
		ORDER BY created_at DESC`
	rows, err := r.db.Query(q, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *transactionRepository) Update(tx *models.Transaction) error {
	const q = `
		UPDATE transactions
		SET amount=$1, category=$2, note=$3, type=$4, date=$5
		WHERE id=$6 AND owner_id=$7`
	_, err := r.db.Exec(q, tx.Amount, tx.Category, tx.Note, tx.Type, tx.Date, tx.ID, tx.OwnerID)
	return err
}

func (r *transactionRepository) Delete(id int64, ownerID int) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM transactions WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var res []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Amount, &t.Category, &t.Note, &t.Type, &t.Date, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}
