// Package main is the entry point for the projectinfo service.
package main

import (
	"os"

	"github.com/goliatone/go-projectinfo/cmd/projectinfo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
