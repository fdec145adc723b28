// main is the entry point for the encuesta CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/encuesta/cmd"
	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/runstore"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; connection strings may come from the environment instead.
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

// run executes the root command and releases the history store and logger afterwards.
func run() error {
	defer contract.SyncLogger()
	defer runstore.CloseHistory()
	return cmd.Execute()
}
