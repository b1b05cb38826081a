package main

import (
	"os"

	"alfredoptarigan/resume-builder/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(cli.DefaultFactory).Execute(); err != nil {
		os.Exit(1)
	}
}
