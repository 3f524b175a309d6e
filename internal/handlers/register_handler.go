package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"financetracker/internal/services"
)

type RegisterHandler struct {
	registration services.RegistrationService
}

func NewRegisterHandler(registration services.RegistrationService) *RegisterHandler {
	return &RegisterHandler{registration: registration}
}

// @Summary      Запросить регистрацию
// @Description  Создаёт временную запись и отправляет код подтверждения на email
// @Tags         Register
// @Accept       json
// @Produce      json
// @Param        request  body      object  true  "email, password, name"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /register/request [post]
func (h *RegisterHandler) Request(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registration.BeginRegistration(req.Email, req.Password, req.Name); err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email уже зарегистрирован"})
		case errors.Is(err, services.ErrMailDelivery):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка отправки кода"})
		default:
			log.Printf("[register][request] failed email=%q: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Код отправлен на email"})
}

// @Summary      Подтвердить регистрацию
// @Description  Проверяет код и создаёт подтверждённого пользователя
// @Tags         Register
// @Accept       json
// @Produce      json
// @Param        request  body      object  true  "email, code"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /register/confirm [post]
func (h *RegisterHandler) Confirm(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.registration.Confirm(req.Email, req.Code)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOrExpiredCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный код или срок действия истёк"})
			return
		}
		log.Printf("[register][confirm] failed email=%q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "confirmation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detail":  "Регистрация успешна",
		"user_id": userID,
	})
}
