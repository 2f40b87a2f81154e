package main

import (
	"log"

	"github.com/joho/godotenv"

	"leadway/caution_backend/internal/app"
)

func main() {
	_ = godotenv.Load()

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
