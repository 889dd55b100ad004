// Command eventra manages the Eventra event store from the command line.
package main

import (
	"os"

	"github.com/Punitjadhav07/Hack-build/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
