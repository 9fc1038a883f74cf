// ABOUTME: Catalog commands listing workload templates and instance tiers
// ABOUTME: Prints the built-in presets as tables or JSON

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/markalston/capacity-planner/internal/tui/styles"
	"github.com/markalston/capacity-planner/services"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List workload templates",
	Long:  `List the built-in workload templates with their default traffic and optimization levers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplates(os.Stdout, IsJSONOutput())
	},
}

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List AWS-equivalent instance tiers",
	Long:  `List the instance tiers used to price scenarios in aws-equivalent mode.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTiers(os.Stdout, IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(tiersCmd)
}

func runTemplates(w io.Writer, jsonOut bool) error {
	templates := services.GetCapacityTemplates()
	if jsonOut {
		return writeJSON(w, templates)
	}

	t := newTable("ID", "Name", "Class", "Avg RPS", "Peak", "Payload", "Users", "Availability", "Levers (cache/async/db/util)")
	for _, tmpl := range templates {
		wl, a := tmpl.Workload, tmpl.Advanced
		t.Row(
			tmpl.ID,
			tmpl.Name,
			string(tmpl.WorkloadClass),
			humanize.Commaf(wl.AvgRPS),
			fmt.Sprintf("%gx", wl.PeakMultiplier),
			fmt.Sprintf("%g KB", wl.PayloadKB),
			humanize.Commaf(wl.ConcurrentUsers),
			fmt.Sprintf("%g%%", float64(wl.AvailabilityTarget)),
			fmt.Sprintf("%g/%g/%g/%g", a.CacheHitPercent, a.AsyncOffloadPercent, a.DBOffloadPercent, a.TargetUtilizationPercent),
		)
	}

	fmt.Fprintln(w, styles.Title.Render("Workload Templates"))
	fmt.Fprintln(w, t.Render())
	return nil
}

func runTiers(w io.Writer, jsonOut bool) error {
	tiers := services.AwsEquivalentTiers()
	if jsonOut {
		return writeJSON(w, map[string]any{"tiers": tiers})
	}

	t := newTable("Instance", "CU/Node", "Preferred up to", "vCPU", "Memory", "Network", "Monthly/Node")
	for _, tier := range tiers {
		t.Row(
			tier.InstanceType,
			fmt.Sprintf("%g", tier.CUPerNode),
			fmt.Sprintf("%g CU", tier.MaxPreferredCU),
			fmt.Sprintf("%d", tier.CPUCores),
			fmt.Sprintf("%d GB", tier.MemoryGB),
			fmt.Sprintf("%g Gbps", tier.NetworkGbps),
			"$"+humanize.FormatFloat("#,###.##", tier.MonthlyCostUSD),
		)
	}

	fmt.Fprintln(w, styles.Title.Render("AWS-Equivalent Tiers"))
	fmt.Fprintln(w, t.Render())
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Muted)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.KeyStyle.Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}
