// Package main is the entry point for booking-cost CLI.
package main

import (
	"os"

	"booking-cost/cmd/cli/cmd"
	"booking-cost/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
