package services

import (
	"time"

	"financetracker/internal/models"
	"financetracker/internal/repositories"
)

type StatisticsService interface {
	Aggregate(ownerID int, period string, start, end *time.Time) (*models.Statistics, error)
}

type statisticsService struct {
	repo repositories.TransactionRepository
	now  func() time.Time
}

func NewStatisticsService(repo repositories.TransactionRepository) StatisticsService {
	return &statisticsService{repo: repo, now: time.Now}
}

// ResolveWindow — явные границы важнее period. Окна фиксированной длины,
// к календарю не выравниваем; незнакомый period означает "за всё время".
func ResolveWindow(period string, start, end *time.Time, now time.Time) (time.Time, time.Time) {
	if start != nil && end != nil {
		return *start, *end
	}
	var from time.Time
	switch period {
	case "day":
		from = now.AddDate(0, 0, -1)
	case "week":
		from = now.AddDate(0, 0, -7)
	case "month":
		from = now.AddDate(0, 0, -30)
	case "year":
		from = now.AddDate(0, 0, -365)
	default:
		from = time.Unix(0, 0)
	}
	return from, now
}

func (s *statisticsService) Aggregate(ownerID int, period string, start, end *time.Time) (*models.Statistics, error) {
	from, to := ResolveWindow(period, start, end, s.now())

	txs, err := s.repo.FindByOwnerAndDateRange(ownerID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &models.Statistics{
		IncomeByCategory:  map[string]float64{},
		ExpenseByCategory: map[string]float64{},
	}
	for _, t := range txs {
		if t.Type == models.TypeIncome {
			stats.TotalIncome += t.Amount
			stats.IncomeByCategory[t.Category] += t.Amount
		} else {
			stats.TotalExpense += t.Amount
			stats.ExpenseByCategory[t.Category] += t.Amount
		}
	}
	stats.Balance = stats.TotalIncome - stats.TotalExpense
	return stats, nil
}
