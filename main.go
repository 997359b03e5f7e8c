package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/skonate/griot/internal/cli"
)

func main() {
	// Load .env if present (API keys for embedding/LLM providers)
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
