package main

import (
	"os"

	"github.com/denismitr/scmboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
