// Package main is the entry point for careerctl, the operator tool for the careers API.
package main

import (
	"os"

	"go-careers-backend/cmd/careerctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
