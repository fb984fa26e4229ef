// Package main is the entry point for the cf CLI client.
package main

import (
	"github.com/donaldgifford/carfinder/cmd/cf/cmd"
)

func main() {
	cmd.Execute()
}
