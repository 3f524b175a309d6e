package models

import "time"

// EmailVerification — временная запись регистрации: код и отложенный payload
// будущего пользователя. Строка живёт до expires_at и удаляется при
// успешном подтверждении.
type EmailVerification struct {
	ID        int64
	Email     string
	Code      string
	Password  string // plaintext до подтверждения, хэшируется при создании пользователя
	Name      string
	ExpiresAt time.Time
}
