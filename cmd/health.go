// ABOUTME: Health command for the capacity-planner CLI
// ABOUTME: Checks connectivity to a running capacity planner server

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/capacity-planner/internal/client"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server connectivity",
	Long:  `Check connectivity to a capacity planner server started with 'serve'.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// serverURL is the configured API URL, or the local default server
func serverURL() string {
	if url := GetAPIURL(); url != "" {
		return url
	}
	return defaultAPIURL
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := serverURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		writeJSON(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	return fmt.Sprintf(`Server:          %s
Status:          %s
Session Backend: %s
Cache Enabled:   %t`, url, resp.Status, resp.SessionBackend, resp.CacheEnabled)
}

// formatHealthJSON adds the server URL to the health response
func formatHealthJSON(url string, resp *client.HealthResponse) map[string]any {
	return map[string]any{
		"server":          url,
		"status":          resp.Status,
		"session_backend": resp.SessionBackend,
		"cache_enabled":   resp.CacheEnabled,
	}
}
