package services

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financetracker/internal/models"
)

type stubTxRepo struct {
	txs    map[int64]*models.Transaction
	nextID int64
}

func newStubTxRepo() *stubTxRepo {
	return &stubTxRepo{txs: map[int64]*models.Transaction{}}
}

func (s *stubTxRepo) Store(tx *models.Transaction) error {
	s.nextID++
	tx.ID = s.nextID
	cp := *tx
	s.txs[tx.ID] = &cp
	return nil
}

func (s *stubTxRepo) FindByOwner(ownerID int) ([]models.Transaction, error) {
	var res []models.Transaction
	for _, t := range s.txs {
		if t.OwnerID == ownerID {
			res = append(res, *t)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (s *stubTxRepo) FindByIDAndOwner(id int64, ownerID int) (*models.Transaction, error) {
	t, ok := s.txs[id]
	if !ok || t.OwnerID != ownerID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *stubTxRepo) FindByOwnerAndDateRange(ownerID int, from, to time.Time) ([]models.Transaction, error) {
	return nil, nil
}

func (s *stubTxRepo) Update(tx *models.Transaction) error {
	cp := *tx
	s.txs[tx.ID] = &cp
	return nil
}

func (s *stubTxRepo) Delete(id int64, ownerID int) (bool, error) {
	t, ok := s.txs[id]
	if !ok || t.OwnerID != ownerID {
		return false, nil
	}
	delete(s.txs, id)
	return true, nil
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestCreateDefaults(t *testing.T) {
	svc := NewTransactionService(newStubTxRepo())

	before := time.Now()
	tx, err := svc.Create(1, 99.5, "food", "", "", nil)
	require.NoError(t, err)

	assert.Equal(t, models.TypeExpense, tx.Type) // тип по умолчанию
	assert.False(t, tx.Date.Before(before))      // дата по умолчанию — сейчас
	assert.Equal(t, 1, tx.OwnerID)
}

func TestCreateWithExplicitDate(t *testing.T) {
	svc := NewTransactionService(newStubTxRepo())

	d := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	tx, err := svc.Create(1, 10, "food", "lunch", models.TypeExpense, &d)
	require.NoError(t, err)
	assert.Equal(t, d, tx.Date)
	assert.Equal(t, "lunch", tx.Note)
}

func TestUpdateAppliesOnlyPresentFields(t *testing.T) {
	repo := newStubTxRepo()
	svc := NewTransactionService(repo)

	tx, err := svc.Create(1, 100, "food", "groceries", models.TypeExpense, nil)
	require.NoError(t, err)

	updated, err := svc.Update(1, tx.ID, models.TransactionPatch{
		Amount: f64Ptr(120),
	})
	require.NoError(t, err)

	assert.Equal(t, 120.0, updated.Amount)
	// не присланные поля не тронуты и не занулены
	assert.Equal(t, "food", updated.Category)
	assert.Equal(t, "groceries", updated.Note)
	assert.Equal(t, models.TypeExpense, updated.Type)
}

func TestUpdateCanClearNoteExplicitly(t *testing.T) {
	repo := newStubTxRepo()
	svc := NewTransactionService(repo)

	tx, err := svc.Create(1, 100, "food", "groceries", models.TypeExpense, nil)
	require.NoError(t, err)

	updated, err := svc.Update(1, tx.ID, models.TransactionPatch{Note: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Note)
}

func TestUpdateForeignTransactionNotFound(t *testing.T) {
	repo := newStubTxRepo()
	svc := NewTransactionService(repo)

	tx, err := svc.Create(1, 100, "food", "", models.TypeExpense, nil)
	require.NoError(t, err)

	// владелец 2 не видит транзакцию владельца 1
	_, err = svc.Update(2, tx.ID, models.TransactionPatch{Amount: f64Ptr(1)})
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	// и удалить тоже не может
	err = svc.Delete(2, tx.ID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	// оригинал цел
	still, _ := repo.FindByIDAndOwner(tx.ID, 1)
	require.NotNil(t, still)
	assert.Equal(t, 100.0, still.Amount)
}

func TestListScopedToOwner(t *testing.T) {
	repo := newStubTxRepo()
	svc := NewTransactionService(repo)

	_, err := svc.Create(1, 10, "a", "", models.TypeIncome, nil)
	require.NoError(t, err)
	_, err = svc.Create(2, 20, "b", "", models.TypeIncome, nil)
	require.NoError(t, err)

	txs, err := svc.ListForOwner(1)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 1, txs[0].OwnerID)
}

func TestDeleteMissingNotFound(t *testing.T) {
	svc := NewTransactionService(newStubTxRepo())
	err := svc.Delete(1, 42)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
