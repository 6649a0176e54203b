package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/velmora/brandpulse-backend/internal/app"
)

func main() {
	// Missing .env is fine in containerized deploys; env comes from the runtime.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		fmt.Printf("failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Start()

	if err := a.Run(); err != nil {
		a.Log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
