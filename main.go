// ABOUTME: Entry point for the capacity-planner CLI and API server
// ABOUTME: Estimates infrastructure sizing for baseline and optimized scenarios

package main

import (
	"fmt"
	"os"

	"github.com/markalston/capacity-planner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
