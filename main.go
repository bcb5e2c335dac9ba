package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitError)
	}
}
