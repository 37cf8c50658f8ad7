package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/lectern-ai/lectern/internal/adapters/driving/cli"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
