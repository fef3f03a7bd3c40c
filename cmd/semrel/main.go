package main

import (
	"os"

	"github.com/ariel-frischer/semrel/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
