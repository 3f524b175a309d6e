package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financetracker/internal/models"
	"financetracker/internal/pdf"
)

type stubStatsService struct {
	stats      *models.Statistics
	lastPeriod string
	lastStart  *time.Time
	lastEnd    *time.Time
}

func (s *stubStatsService) Aggregate(ownerID int, period string, start, end *time.Time) (*models.Statistics, error) {
	s.lastPeriod, s.lastStart, s.lastEnd = period, start, end
	return s.stats, nil
}

type stubUserService struct {
	user *models.User
}

func (s *stubUserService) GetUserByID(id int) (*models.User, error) { return s.user, nil }

func (s *stubUserService) GetUserByEmail(email string) (*models.User, error) { return s.user, nil }

func (s *stubUserService) UpdateName(id int, name string) error { return nil }

func newStatsRouter(stats *stubStatsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// авторизацию подменяем: кладём user_id напрямую
	r.Use(func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	})
	h := NewStatisticsHandler(stats, &stubUserService{user: &models.User{ID: 1, Email: "u@example.com", Name: "U"}}, pdf.NewReportGenerator(""))
	r.GET("/statistics", h.Get)
	r.GET("/statistics/export", h.Export)
	return r
}

func TestStatisticsBadDateFormat(t *testing.T) {
	r := newStatsRouter(&stubStatsService{stats: &models.Statistics{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/statistics?start_date=10.03.2024&end_date=2024-03-11", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatisticsOK(t *testing.T) {
	stats := &stubStatsService{stats: &models.Statistics{
		TotalIncome:       1000,
		TotalExpense:      250,
		Balance:           750,
		IncomeByCategory:  map[string]float64{"salary": 1000},
		ExpenseByCategory: map[string]float64{"food": 250},
	}}
	r := newStatsRouter(stats)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/statistics?period=week", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "week", stats.lastPeriod)

	var body models.Statistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 750.0, body.Balance)
	assert.Equal(t, 250.0, body.ExpenseByCategory["food"])
}

func TestStatisticsDefaultPeriodIsMonth(t *testing.T) {
	stats := &stubStatsService{stats: &models.Statistics{}}
	r := newStatsRouter(stats)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/statistics", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "month", stats.lastPeriod)
}

func TestStatisticsExportReturnsPDF(t *testing.T) {
	stats := &stubStatsService{stats: &models.Statistics{
		TotalIncome: 1, IncomeByCategory: map[string]float64{"a": 1}, ExpenseByCategory: map[string]float64{},
	}}
	r := newStatsRouter(stats)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/statistics/export?period=week", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	raw, _ := io.ReadAll(w.Body)
	require.NotEmpty(t, raw)
	assert.Equal(t, "%PDF", string(raw[:4]))
}
