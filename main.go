package main

import (
	"os"

	"github.com/clinassist/clinrag/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
