package main

import (
	"os"

	"github.com/Seraphli/ctxbar/cmd"
)

func main() {
	// Errors stay off stderr: a broken statusline only shows as exit status 1.
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
