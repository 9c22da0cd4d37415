package main

import (
	"os"

	"github.com/vertex-lang/vertex/cmd/vertex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
