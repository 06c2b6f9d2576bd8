package main

import (
	"os"

	"github.com/bookkeeping-app/bookkeeping_app/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
