package services

import (
	"errors"
	"time"

	"financetracker/internal/models"
	"financetracker/internal/repositories"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type TransactionService interface {
	Create(ownerID int, amount float64, category, note string, txType models.TransactionType, date *time.Time) (*models.Transaction, error)
	ListForOwner(ownerID int) ([]models.Transaction, error)
	Update(ownerID int, id int64, patch models.TransactionPatch) (*models.Transaction, error)
	Delete(ownerID int, id int64) error
}

type transactionService struct {
	repo repositories.TransactionRepository
}

func NewTransactionService(repo repositories.TransactionRepository) TransactionService {
	return &transactionService{repo: repo}
}

func (s *transactionService) Create(ownerID int, amount float64, category, note string, txType models.TransactionType, date *time.Time) (*models.Transaction, error) {
	if txType == "" {
		txType = models.TypeExpense
	}
	now := time.Now()
	d := now
	if date != nil {
		d = *date
	}
	tx := &models.Transaction{
		OwnerID:   ownerID,
		Amount:    amount,
		Category:  category,
		Note:      note,
		Type:      txType,
		Date:      d,
		CreatedAt: now,
	}
	if err := s.repo.Store(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) ListForOwner(ownerID int) ([]models.Transaction, error) {
	return s.repo.FindByOwner(ownerID)
}

// Update — сначала owner-scoped выборка, затем накладываем только
// присланные поля. Чужой id даёт тот же ErrTransactionNotFound, что и
// несуществующий.
func (s *transactionService) Update(ownerID int, id int64, patch models.TransactionPatch) (*models.Transaction, error) {
	existing, err := s.repo.FindByIDAndOwner(id, ownerID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrTransactionNotFound
	}

	if patch.Amount != nil {
		existing.Amount = *patch.Amount
	}
	if patch.Category != nil {
		existing.Category = *patch.Category
	}
	if patch.Note != nil {
		existing.Note = *patch.Note
	}
	if patch.Type != nil {
		existing.Type = *patch.Type
	}
	if patch.Date != nil {
		existing.Date = *patch.Date
	}

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *transactionService) Delete(ownerID int, id int64) error {
	ok, err := s.repo.Delete(id, ownerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTransactionNotFound
	}
	return nil
}
