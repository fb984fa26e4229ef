// Package main is the entry point for the carfinder server.
package main

import (
	"os"

	"github.com/donaldgifford/carfinder/cmd/carfinder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
