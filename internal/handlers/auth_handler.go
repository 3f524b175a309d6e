package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"financetracker/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// @Summary      Получить токен доступа
// @Description  OAuth2-style form: username (email) + password, возвращает bearer-токен
// @Tags         Auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Email"
// @Param        password  formData  string  true  "Пароль"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	// форма в стиле OAuth2 password flow: username = email
	email := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect credentials"})
		return
	}

	user, err := h.authService.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// не различаем "нет пользователя" и "не тот пароль"
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect credentials"})
			return
		}
		log.Printf("[auth][token] authenticate failed email=%q: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	token, err := h.authService.IssueToken(user.Email)
	if err != nil {
		log.Printf("[auth][token] sign failed userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}
