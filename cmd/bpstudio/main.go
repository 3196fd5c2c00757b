// cmd/bpstudio/main.go
//
// Entry point for the battle-pass editor.
//
//	bpstudio [dir]                  open the editor on a project directory
//	bpstudio check [dir]            validate the documents and list problems
//	bpstudio generate reward|quest  print random records as YAML

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
