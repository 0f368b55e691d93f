package main

import (
	"fmt"
	"os"

	"auracore/internal/cli"
)

func main() {
	if err := cli.Execute(cli.Options{}); err != nil {
		fmt.Fprintln(os.Stderr, "auracore:", err)
		os.Exit(1)
	}
}
