package main

import (
	"fmt"
	"os"

	"hirematch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "matchctl: %v\n", err)
		os.Exit(1)
	}
}
