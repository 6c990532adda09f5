package main

import (
	"os"

	"github.com/jmolenaar/pharmvault/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
