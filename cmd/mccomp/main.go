package main

import (
	"os"

	"github.com/cwbudde/minicc/cmd/mccomp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
