package main

import (
	"os"

	"github.com/Skaland01/Kollektiv/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
