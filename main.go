package main

import (
	"os"

	"github.com/jandubois/rsvprobe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
