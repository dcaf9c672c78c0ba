// Condense - deterministic prompt compression
package main

import (
	"os"

	"github.com/HartBrook/condense/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
