package main

import (
	"os"

	"github.com/gnolang/cslint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
