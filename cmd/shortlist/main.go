package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mjcarter/shortlist/internal/cli"
)

func main() {
	// A .env in the working directory can set SHORTLIST_* variables.
	_ = godotenv.Load()

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
