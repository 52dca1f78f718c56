package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"ledger/internal/cli"
)

// @title Ledger Users API
// @version 1.0
// @BasePath /
func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
