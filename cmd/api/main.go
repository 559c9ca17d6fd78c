package main

import (
	"os"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
