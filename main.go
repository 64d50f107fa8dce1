package main

import (
	"os"

	"github.com/pawsitive/mathcat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
