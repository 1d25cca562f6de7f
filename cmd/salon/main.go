package main

import (
	"os"

	"github.com/salonbook/salon/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
