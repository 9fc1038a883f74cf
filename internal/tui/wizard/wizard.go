// ABOUTME: Scenario planning wizard as a bubbletea model
// ABOUTME: Collects template, workload, and optimization levers through huh forms

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/capacity-planner/internal/tui/styles"
	"github.com/markalston/capacity-planner/models"
	"github.com/markalston/capacity-planner/services"
)

// Step names for progress indicator
var stepNames = []string{"Template", "Workload", "Optimizations"}

// Wizard manages the scenario planning flow as a bubbletea model
type Wizard struct {
	pair      models.ScenarioPair
	form      *huh.Form
	step      int
	width     int
	done      bool
	cancelled bool

	// Form field values (strings for huh)
	templateID   string
	providerMode string

	avgRPS         string
	peakMultiplier string
	payloadKB      string
	users          string
	readPercent    string
	availability   string
	growth         string

	cacheHit    string
	asyncOff    string
	dbOff       string
	utilization string
}

// createTheme returns a huh theme using the shared palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)

	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Primary).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(styles.Text)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Info).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Muted).
		Background(styles.Surface).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Muted).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(styles.Muted)

	return t
}

// New creates a wizard prefilled from an existing pair, typically a saved session
func New(initial models.ScenarioPair) *Wizard {
	w := &Wizard{
		pair:         initial,
		step:         1,
		templateID:   initial.Baseline.TemplateID,
		providerMode: string(initial.Baseline.ProviderMode),
	}
	if _, ok := services.GetCapacityTemplate(w.templateID); !ok {
		w.templateID = models.CustomTemplateID
	}
	if !models.ProviderMode(w.providerMode).Valid() {
		w.providerMode = string(models.ProviderNeutral)
	}
	w.loadWorkloadFields(initial.Baseline.Workload)
	w.loadLeverFields(initial.Optimized.Advanced)

	w.form = w.createTemplateForm()
	return w
}

func (w *Wizard) loadWorkloadFields(wl models.WorkloadParams) {
	w.avgRPS = formatNumber(wl.AvgRPS)
	w.peakMultiplier = formatNumber(wl.PeakMultiplier)
	w.payloadKB = formatNumber(wl.PayloadKB)
	w.users = formatNumber(wl.ConcurrentUsers)
	w.readPercent = formatNumber(wl.ReadPercent)
	w.availability = formatNumber(float64(wl.AvailabilityTarget))
	w.growth = formatNumber(wl.AnnualGrowthPercent)
}

func (w *Wizard) loadLeverFields(a models.AdvancedParams) {
	w.cacheHit = formatNumber(a.CacheHitPercent)
	w.asyncOff = formatNumber(a.AsyncOffloadPercent)
	w.dbOff = formatNumber(a.DBOffloadPercent)
	w.utilization = formatNumber(a.TargetUtilizationPercent)
}

func templateOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, t := range services.GetCapacityTemplates() {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", t.Name, t.WorkloadClass), t.ID))
	}
	return append(opts, huh.NewOption("Custom", models.CustomTemplateID))
}

func availabilityOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, a := range models.AvailabilityTargets {
		v := formatNumber(float64(a))
		opts = append(opts, huh.NewOption(v+"%", v))
	}
	return opts
}

func (w *Wizard) createTemplateForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Workload template").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(templateOptions()...).
				Value(&w.templateID),
			huh.NewSelect[string]().
				Title("Pricing").
				Options(
					huh.NewOption("Neutral (per capacity unit)", string(models.ProviderNeutral)),
					huh.NewOption("AWS-equivalent (per node)", string(models.ProviderAWSEquivalent)),
				).
				Value(&w.providerMode),
		).Title("Step 1: Template").
			Description("Pick a starting workload; both scenarios share it"),
	).WithTheme(createTheme())
}

func (w *Wizard) createWorkloadForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			numberInput("Average requests per second", &w.avgRPS, validatePositive),
			numberInput("Peak multiplier", &w.peakMultiplier, validateAtLeastOne),
			numberInput("Payload size (KB)", &w.payloadKB, validatePositive),
			numberInput("Concurrent users", &w.users, validateNonNegative),
			numberInput("Read share (%)", &w.readPercent, validatePercentage),
			huh.NewSelect[string]().
				Title("Availability target").
				Options(availabilityOptions()...).
				Value(&w.availability),
			numberInput("Annual growth (%)", &w.growth, validateGrowth),
		).Title("Step 2: Workload").
			Description("Traffic shape at today's scale"),
	).WithTheme(createTheme())
}

func (w *Wizard) createLeversForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			numberInput("Cache hit rate (%)", &w.cacheHit, validatePercentage),
			numberInput("Async offload (%)", &w.asyncOff, validatePercentage),
			numberInput("DB offload (%)", &w.dbOff, validatePercentage),
			numberInput("Target utilization (%)", &w.utilization, validateUtilization),
		).Title("Step 3: Optimizations").
			Description("Levers for the optimized scenario; the baseline keeps the template defaults"),
	).WithTheme(createTheme())
}

func numberInput(title string, value *string, validate func(string) error) *huh.Input {
	return huh.NewInput().
		Title(title).
		CharLimit(10).
		Value(value).
		Validate(validate)
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" || msg.String() == "ctrl+c" {
			w.cancelled = true
			return w, tea.Quit
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}
	if w.form.State == huh.StateAborted {
		w.cancelled = true
		return w, tea.Quit
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		// A different template resets the workload and levers to its defaults
		if w.templateID != w.pair.Baseline.TemplateID {
			fresh := services.CreateScenarioPairFromTemplate(w.templateID, models.ProviderMode(w.providerMode))
			w.loadWorkloadFields(fresh.Baseline.Workload)
			w.loadLeverFields(fresh.Optimized.Advanced)
		}
		w.step = 2
		w.form = w.createWorkloadForm()
		return w, w.form.Init()

	case 2:
		w.step = 3
		w.form = w.createLeversForm()
		return w, w.form.Init()

	case 3:
		w.done = true
		return w, tea.Quit
	}

	return w, nil
}

// View implements tea.Model
func (w *Wizard) View() string {
	if w.done || w.cancelled {
		return ""
	}
	return w.renderProgress() + "\n\n" + w.form.View()
}

// renderProgress renders the step indicator line
func (w *Wizard) renderProgress() string {
	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		switch {
		case stepNum < w.step:
			steps = append(steps, lipgloss.NewStyle().Foreground(styles.Secondary).Render("✓ "+name))
		case stepNum == w.step:
			steps = append(steps, lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("● "+name))
		default:
			steps = append(steps, lipgloss.NewStyle().Foreground(styles.Muted).Render("○ "+name))
		}
	}
	return styles.Panel.Render(strings.Join(steps, "    "))
}

// Completed reports whether the user finished every step
func (w *Wizard) Completed() bool {
	return w.done
}

// Cancelled reports whether the user left the wizard early
func (w *Wizard) Cancelled() bool {
	return w.cancelled
}

// Pair builds the scenario pair from the collected values. The baseline keeps
// its levers; the optimized scenario takes the levers entered in step 3.
func (w *Wizard) Pair() models.ScenarioPair {
	mode := models.ProviderMode(w.providerMode)
	pair := w.pair
	if pair.Baseline.TemplateID != w.templateID || pair.Baseline.ID == "" {
		pair = services.CreateScenarioPairFromTemplate(w.templateID, mode)
	}

	workload := models.WorkloadParams{
		AvgRPS:              parseNumber(w.avgRPS),
		PeakMultiplier:      parseNumber(w.peakMultiplier),
		PayloadKB:           parseNumber(w.payloadKB),
		ConcurrentUsers:     parseNumber(w.users),
		ReadPercent:         parseNumber(w.readPercent),
		AvailabilityTarget:  models.AvailabilityTarget(parseNumber(w.availability)),
		AnnualGrowthPercent: parseNumber(w.growth),
	}

	pair.Baseline.ProviderMode = mode
	pair.Optimized.ProviderMode = mode
	pair.Baseline.Workload = workload
	pair.Optimized.Workload = workload
	pair.Optimized.Advanced = models.AdvancedParams{
		CacheHitPercent:          parseNumber(w.cacheHit),
		AsyncOffloadPercent:      parseNumber(w.asyncOff),
		DBOffloadPercent:         parseNumber(w.dbOff),
		TargetUtilizationPercent: parseNumber(w.utilization),
	}
	return pair
}

// Run shows the wizard full screen and returns the collected pair.
// The bool is false when the user cancelled.
func Run(initial models.ScenarioPair, opts ...tea.ProgramOption) (models.ScenarioPair, bool, error) {
	w := New(initial)
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)

	final, err := tea.NewProgram(w, opts...).Run()
	if err != nil {
		return models.ScenarioPair{}, false, err
	}

	fw, ok := final.(*Wizard)
	if !ok || !fw.Completed() {
		return models.ScenarioPair{}, false, nil
	}
	return fw.Pair(), true, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseNumber(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func validateNumber(s string, ok func(float64) bool, msg string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !ok(v) {
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func validatePositive(s string) error {
	return validateNumber(s, func(v float64) bool { return v > 0 }, "must be a positive number")
}

func validateAtLeastOne(s string) error {
	return validateNumber(s, func(v float64) bool { return v >= 1 }, "must be at least 1")
}

func validateNonNegative(s string) error {
	return validateNumber(s, func(v float64) bool { return v >= 0 }, "cannot be negative")
}

func validatePercentage(s string) error {
	return validateNumber(s, func(v float64) bool { return v >= 0 && v <= 100 }, "must be between 0 and 100")
}

func validateUtilization(s string) error {
	return validateNumber(s, func(v float64) bool { return v > 0 && v <= 100 }, "must be above 0 and at most 100")
}

func validateGrowth(s string) error {
	return validateNumber(s, func(v float64) bool { return v >= -100 }, "cannot be below -100")
}
