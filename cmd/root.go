// ABOUTME: Root command for the capacity-planner CLI
// ABOUTME: Handles global flags and shared output helpers

package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const (
	apiURLEnv     = "CAPACITY_PLANNER_API_URL"
	defaultAPIURL = "http://localhost:8080"
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "capacity-planner",
	Short: "Capacity planning estimates for baseline and optimized scenarios",
	Long: `capacity-planner turns workload assumptions into infrastructure sizing.

It estimates capacity units, node counts, cost, and latency for a baseline and an
optimized scenario, today and twelve months out. Scenarios are calculated locally
unless an API URL is configured, in which case a running server does the work.

Environment Variables:
  CAPACITY_PLANNER_API_URL  Server to calculate against (default: calculate locally)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Server API URL (overrides "+apiURLEnv+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag or env. Empty means calculate locally.
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	return os.Getenv(apiURLEnv)
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
