package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/dmarrero/acbtrack/internal/cli"
)

func main() {
	// Optional .env for API keys and overrides; absence is fine.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
