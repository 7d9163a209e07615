package main

import (
	"fmt"
	"os"

	"github.com/agentrules/hookctl/pkg/cli"
)

// version is set at build time.
var version = "dev"

func main() {
	cli.SetVersionInfo(version)
	cmd := cli.NewRootCommand()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
