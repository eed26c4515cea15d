package initializers

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file into the environment if one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
}
