// ABOUTME: Comparison view showing baseline vs optimized scenario projections
// ABOUTME: Renders side-by-side panels, deltas, summary, warnings, and recommendations

package comparison

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/markalston/capacity-planner/internal/tui/styles"
	"github.com/markalston/capacity-planner/models"
)

const minWidth = 72

// Comparison displays scenario comparison results
type Comparison struct {
	pair   models.ScenarioPair
	result *models.ScenarioPairResult
	width  int
}

// New creates a new comparison view
func New(pair models.ScenarioPair, result *models.ScenarioPairResult, width int) *Comparison {
	if width < minWidth {
		width = minWidth
	}
	return &Comparison{
		pair:   pair,
		result: result,
		width:  width,
	}
}

// View renders the comparison
func (c *Comparison) View() string {
	if c.result == nil {
		return "No comparison data"
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Scenario Comparison"))
	sb.WriteString("\n")

	colWidth := (c.width - 6) / 2
	left := styles.Panel.Width(colWidth).Render(RenderScenario(c.pair.Baseline, c.result.Baseline))
	right := styles.ActivePanel.Width(colWidth).Render(RenderScenario(c.pair.Optimized, c.result.Optimized))
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("Changes (optimized - baseline)"))
	sb.WriteString("\n")
	sb.WriteString(renderDeltas(c.result.Comparison))

	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Summary"))
	sb.WriteString("\n")
	for _, line := range c.result.Comparison.Summary {
		sb.WriteString("  " + line + "\n")
	}

	sb.WriteString(renderList("Warnings", styles.StatusWarning, "!", c.result.Baseline.Now.Warnings, c.result.Optimized.Now.Warnings))
	sb.WriteString(renderList("Recommendations", styles.KeyStyle, "*", c.result.Baseline.Now.Recommendations, c.result.Optimized.Now.Recommendations))

	return lipgloss.NewStyle().Width(c.width).Render(sb.String())
}

// RenderScenario renders one scenario's current and month-12 projections
func RenderScenario(input models.CapacityScenarioInput, out models.CapacityScenarioOutput) string {
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render(input.Name))
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("  %s / %s", input.TemplateID, input.ProviderMode)))
	sb.WriteString("\n\n")
	sb.WriteString(renderPoint("Now", out.Now))
	sb.WriteString("\n")
	sb.WriteString(renderPoint("Month 12", out.Month12))
	return strings.TrimRight(sb.String(), "\n")
}

func renderPoint(label string, p models.PointProjection) string {
	var sb strings.Builder
	sb.WriteString(styles.KeyStyle.Render(label))
	sb.WriteString("\n")

	nodes := fmt.Sprintf("%d", p.NodeCount)
	if p.AwsEquivalent != nil {
		nodes += " x " + p.AwsEquivalent.InstanceType
	}

	fmt.Fprintf(&sb, "  Capacity:    %s CU\n", humanize.FormatFloat("#,###.##", p.RequiredCU))
	fmt.Fprintf(&sb, "  Nodes:       %s\n", nodes)
	fmt.Fprintf(&sb, "  Monthly:     $%s\n", humanize.FormatFloat("#,###.##", p.MonthlyCostUSD))
	fmt.Fprintf(&sb, "  Annual:      $%s\n", humanize.FormatFloat("#,###.##", p.AnnualCostUSD))
	fmt.Fprintf(&sb, "  Latency:     p95 %.1f ms / p99 %.1f ms\n", p.LatencyP95Ms, p.LatencyP99Ms)
	fmt.Fprintf(&sb, "  Throughput:  %.2f MB/s\n", p.ThroughputMBps)
	fmt.Fprintf(&sb, "  Utilization: %s %.1f%%\n", styles.ProgressBar(p.UtilizationPercent, 12), p.UtilizationPercent)
	return sb.String()
}

func renderDeltas(d models.ScenarioComparisonOutput) string {
	var sb strings.Builder

	cost := fmt.Sprintf("%s$%s (%+.1f%%)", sign(d.CostDeltaMonthlyUSD), humanize.FormatFloat("#,###.##", abs(d.CostDeltaMonthlyUSD)), d.CostDeltaPercent)
	fmt.Fprintf(&sb, "  Monthly cost:  %s\n", styles.DeltaStyle(d.CostDeltaMonthlyUSD).Render(cost))

	latency := fmt.Sprintf("%+.1f ms (%+.1f%%)", d.LatencyP95DeltaMs, d.LatencyP95DeltaPercent)
	fmt.Fprintf(&sb, "  p95 latency:   %s\n", styles.DeltaStyle(d.LatencyP95DeltaMs).Render(latency))

	capacity := fmt.Sprintf("%+.2f CU", d.RequiredCUDelta)
	fmt.Fprintf(&sb, "  Capacity:      %s\n", styles.DeltaStyle(d.RequiredCUDelta).Render(capacity))

	nodes := fmt.Sprintf("%+d", d.NodeCountDelta)
	fmt.Fprintf(&sb, "  Nodes:         %s\n", styles.DeltaStyle(float64(d.NodeCountDelta)).Render(nodes))

	return sb.String()
}

// renderList merges both scenarios' lines, tagging each with its source
func renderList(title string, style lipgloss.Style, icon string, baseline, optimized []string) string {
	if len(baseline) == 0 && len(optimized) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(style.Render(title))
	sb.WriteString("\n")
	for _, line := range baseline {
		fmt.Fprintf(&sb, "  %s [baseline] %s\n", style.Render(icon), line)
	}
	for _, line := range optimized {
		fmt.Fprintf(&sb, "  %s [optimized] %s\n", style.Render(icon), line)
	}
	return sb.String()
}

func sign(v float64) string {
	switch {
	case v < 0:
		return "-"
	case v > 0:
		return "+"
	}
	return ""
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
