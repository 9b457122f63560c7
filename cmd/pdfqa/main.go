package main

import (
	"github.com/joho/godotenv"

	"pdfqa/internal/cli"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()
	cli.Execute()
}
