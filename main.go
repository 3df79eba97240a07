package main

import (
	"os"

	"github.com/raggedmemory/ram/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
