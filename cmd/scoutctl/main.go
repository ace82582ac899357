package main

import (
	"os"

	"github.com/woodrim/go-scout/cmd/scoutctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
