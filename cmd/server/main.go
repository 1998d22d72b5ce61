// Package main implements the entry point for the tasks API server, which
// scores incoming tasks by deadline, effort and project relevance and serves
// them over a small JSON API.
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
