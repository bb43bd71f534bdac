package main

import (
	"log"

	"github.com/aussiebroadwan/estate/internal/estate/app"
	"github.com/joho/godotenv"
)

func main() {
	loadLocalEnv()

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

// loadLocalEnv reads .env from the working directory when present. Variables
// already set in the environment win.
func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
