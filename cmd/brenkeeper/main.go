package main

import (
	"os"

	"github.com/brenkeeper/brenkeeper/cmd/brenkeeper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
