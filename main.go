package main

import (
	"os"

	"github.com/heather92115/palabras/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
