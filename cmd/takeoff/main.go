// Command takeoff extracts framing-takeoff data from construction plan
// PDFs: scan single documents, serve the HTTP API, or watch a directory
// for new plan sets.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
