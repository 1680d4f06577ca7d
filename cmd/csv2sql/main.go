// Command csv2sql generates dialect-specific SQL from tabular data files.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nao1215/csv2sql/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
