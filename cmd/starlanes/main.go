// Command starlanes runs sector voyages with encounters from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/talgya/starlanes/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
