// Command rainharvest is the interactive calculator: it runs the same
// simulation pipeline as the service, prompting for any parameters not
// supplied as flags, and prints the analysis plus a weekly or monthly table.
package main

import (
	"os"

	"github.com/couchcryptid/rainharvest/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
