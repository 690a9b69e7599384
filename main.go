package main

import (
	"os"

	"github.com/semestra/semestra/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
