package env

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env from the working directory. A missing file is fine.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system envs")
	}
}

func GetEnv(key string, fallback string) string {
	if value, exist := os.LookupEnv(key); exist && value != "" {
		return value
	}
	return fallback
}
