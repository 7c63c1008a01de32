package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/brightgive/donorcrm-backend/internal/app"
)

func main() {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := a.Run(addr); err != nil {
		fmt.Printf("server exited: %v\n", err)
		os.Exit(1)
	}
}
