package config

import (
	"log"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	// If .env is missing, ignore error (env vars can be set by other means)
	if err := godotenv.Load(); err == nil {
		log.Println("Environment variables loaded from .env")
	}
}
