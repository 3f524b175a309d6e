package handlers

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"financetracker/internal/pdf"
	"financetracker/internal/services"
)

type StatisticsHandler struct {
	stats  services.StatisticsService
	users  services.UserService
	report pdf.Generator
}

func NewStatisticsHandler(stats services.StatisticsService, users services.UserService, report pdf.Generator) *StatisticsHandler {
	return &StatisticsHandler{stats: stats, users: users, report: report}
}

// @Summary      Статистика за период
// @Description  period: day|week|month|year; явные start_date/end_date важнее period
// @Tags         Statistics
// @Produce      json
// @Security     BearerAuth
// @Param        period      query  string  false  "day|week|month|year"  default(month)
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  models.Statistics
// @Failure      400  {object}  map[string]string
// @Router       /statistics [get]
func (h *StatisticsHandler) Get(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
		return
	}

	period := c.DefaultQuery("period", "month")
	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date (YYYY-MM-DD)"})
		return
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date (YYYY-MM-DD)"})
		return
	}

	stats, err := h.stats.Aggregate(userID, period, start, end)
	if err != nil {
		log.Printf("[stats][get] failed userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary      Экспорт статистики в PDF
// @Tags         Statistics
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        period      query  string  false  "day|week|month|year"  default(month)
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Failure      400  {object}  map[string]string
// @Router       /statistics/export [get]
func (h *StatisticsHandler) Export(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
		return
	}

	period := c.DefaultQuery("period", "month")
	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date (YYYY-MM-DD)"})
		return
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date (YYYY-MM-DD)"})
		return
	}

	stats, err := h.stats.Aggregate(userID, period, start, end)
	if err != nil {
		log.Printf("[stats][export] aggregate failed userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate statistics"})
		return
	}
	user, err := h.users.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	now := time.Now()
	from, to := services.ResolveWindow(period, start, end, now)
	var buf bytes.Buffer
	err = h.report.WriteStatisticsReport(&buf, pdf.ReportData{
		UserName:   user.Name,
		UserEmail:  user.Email,
		Period:     period,
		From:       from,
		To:         to,
		Statistics: *stats,
	})
	if err != nil {
		log.Printf("[stats][export] pdf failed userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	filename := "statistics_" + now.Format("2006-01-02") + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
