// SpecCmp - MS/MS spectrum similarity toolkit
package main

import (
	"fmt"
	"os"

	"github.com/svandyck/speccmp/cmd/speccmp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
