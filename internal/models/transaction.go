package models

import "time"

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type Transaction struct {
	ID        int64           `json:"id"`
	OwnerID   int             `json:"owner_id"`
	Amount    float64         `json:"amount"`
	Category  string          `json:"category"`
	Note      string          `json:"note"`
	Type      TransactionType `json:"type"`
	Date      time.Time       `json:"date"`       // бизнес-дата операции
	CreatedAt time.Time       `json:"created_at"` // системное время записи
}

// TransactionPatch — частичное обновление: применяем только присланные поля,
// nil означает "не трогать".
type TransactionPatch struct {
	Amount   *float64         `json:"amount"`
	Category *string          `json:"category"`
	Note     *string          `json:"note"`
	Type     *TransactionType `json:"type"`
	Date     *time.Time       `json:"-"`
}
