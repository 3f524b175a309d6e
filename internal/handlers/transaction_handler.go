package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"financetracker/internal/models"
	"financetracker/internal/services"
)

type TransactionHandler struct {
	service services.TransactionService
}

func NewTransactionHandler(service services.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// @Summary      Создать транзакцию
// @Tags         Transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      object  true  "amount, category, note?, type?, date?"
// @Success      200  {object}  models.Transaction
// @Failure      400  {object}  map[string]string
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
		return
	}

	var req struct {
		Amount   float64                `json:"amount" binding:"required"`
		Category string                 `json:"category" binding:"required"`
		Note     string                 `json:"note"`
		Type     models.TransactionType `json:"type"`
		Date     string                 `json:"date"` // YYYY-MM-DD, по умолчанию сегодня
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var date *time.Time
	if req.Date != "" {
		t, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date (YYYY-MM-DD)"})
			return
		}
		date = &t
	}

	tx, err := h.service.Create(userID, req.Amount, req.Category, req.Note, req.Type, date)
	if err != nil {
		log.Printf("[tx][create] failed userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create transaction"})
		return
	}
	c.JSON(http.StatusOK, tx)
}

// @Summary      Список транзакций
// @Description  Все транзакции владельца, новые первыми
// @Tags         Transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Transaction
// @Router       /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
		return
	}
	txs, err := h.service.ListForOwner(userID)
	if err != nil {
		log.Printf("[tx][list] failed userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	c.JSON(http.StatusOK, txs)
}

// @Summary      Обновить транзакцию
// @Description  Частичное обновление: применяются только присланные поля
// @Tags         Transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int     true  "ID транзакции"
// @Param        request  body      models.TransactionPatch  true  "Изменяемые поля"
// @Success      200  {object}  models.Transaction
// @Failure      404  {object}  map[string]string
// @Router       /transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Amount   *float64                `json:"amount"`
		Category *string                 `json:"category"`
		Note     *string                 `json:"note"`
		Type     *models.TransactionType `json:"type"`
		Date     *string                 `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := models.TransactionPatch{
		Amount:   req.Amount,
		Category: req.Category,
		Note:     req.Note,
		Type:     req.Type,
	}
	if req.Date != nil {
		t, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date (YYYY-MM-DD)"})
			return
		}
		patch.Date = &t
	}

	tx, err := h.service.Update(userID, id, patch)
	if err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		log.Printf("[tx][update] failed userID=%d id=%d: %v", userID, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update transaction"})
		return
	}
	c.JSON(http.StatusOK, tx)
}

// @Summary      Удалить транзакцию
// @Tags         Transactions
// @Security     BearerAuth
// @Param        id  path  int  true  "ID транзакции"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(userID, id); err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		log.Printf("[tx][delete] failed userID=%d id=%d: %v", userID, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete transaction"})
		return
	}
	c.Status(http.StatusNoContent)
}
