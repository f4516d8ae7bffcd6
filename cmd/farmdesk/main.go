package main

import (
	"os"

	"github.com/greenacre-dev/farmdesk/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
