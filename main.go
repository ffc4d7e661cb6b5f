package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env (local dev only — CI uses real env vars)
	_ = godotenv.Load()

	os.Exit(Execute())
}
