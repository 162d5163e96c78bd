// Command satchel is the satchel command-line interface.
package main

import (
	"os"

	"github.com/mesh-intelligence/satchel/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
