package main

import (
	"os"

	"github.com/let-the-dreamers-rise/aurorasync-os/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
