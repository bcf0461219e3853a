package main

import (
	"os"

	"github.com/penwyp/yt-slicer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
