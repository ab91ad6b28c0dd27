package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"pokedex-web/cmd"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: could not load .env: %v", err)
		}
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
