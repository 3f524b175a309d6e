package main

import (
	"log"

	"github.com/joho/godotenv"

	"financetracker/internal/app"
)

// @title        Finance API
// @version      1.0
// @description  Личный финансовый трекер: регистрация с кодом на email, транзакции, статистика
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env не обязателен, конфиг и окружение его перекрывают
	if err := godotenv.Load(); err != nil {
		log.Printf(".env не найден, используем окружение")
	}
	app.Run()
}
