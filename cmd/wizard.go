// ABOUTME: Interactive wizard command for building a scenario pair
// ABOUTME: Runs the form, prints the comparison, and saves the session

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/markalston/capacity-planner/internal/tui/comparison"
	"github.com/markalston/capacity-planner/internal/tui/wizard"
	"github.com/markalston/capacity-planner/models"
	"github.com/markalston/capacity-planner/services"
	"github.com/spf13/cobra"
)

var (
	wizardTemplate string
	wizardProvider string
	wizardNoSave   bool
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactively plan a baseline and an optimized scenario",
	Long: `Walk through template, workload, and optimization choices, then compare
the baseline and optimized scenarios.

The wizard starts from the saved session when one exists and saves the result
for 'session show'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := services.ValidateTemplateID(wizardTemplate); err != nil {
			return err
		}
		if err := services.ValidateProviderMode(models.ProviderMode(wizardProvider)); err != nil {
			return err
		}

		sessions := openLocalSessions()
		pair, ok, err := wizard.Run(initialPair(sessions.Load(), wizardTemplate, models.ProviderMode(wizardProvider)))
		if err != nil {
			return fmt.Errorf("wizard failed: %w", err)
		}
		if !ok {
			fmt.Fprintln(os.Stdout, "Wizard cancelled.")
			return nil
		}

		if wizardNoSave {
			sessions = nil
		}
		return finishWizard(cmd.Context(), os.Stdout, sessions, pair, time.Now(), IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)
	wizardCmd.Flags().StringVar(&wizardTemplate, "template", "ecommerce-api", "Starting template when no session is saved")
	wizardCmd.Flags().StringVar(&wizardProvider, "provider", string(models.ProviderNeutral), "Starting pricing mode when no session is saved")
	wizardCmd.Flags().BoolVar(&wizardNoSave, "no-save", false, "Do not save the result as the current session")
	wizardCmd.Flags().StringVar(&sessionDir, "session-dir", "", "Session directory (default: XDG config dir)")
}

// initialPair resumes a saved session or starts from a template
func initialPair(session *models.CapacityPlanningSession, templateID string, mode models.ProviderMode) models.ScenarioPair {
	if session != nil {
		return models.ScenarioPair{Baseline: session.Baseline, Optimized: session.Optimized}
	}
	return services.CreateScenarioPairFromTemplate(templateID, mode)
}

// finishWizard compares the pair and saves it. A nil session store skips saving.
func finishWizard(ctx context.Context, w io.Writer, sessions *services.SessionStore, pair models.ScenarioPair, now time.Time, jsonOut bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := compareScenarioPair(ctx, pair)
	if err != nil {
		return err
	}

	if jsonOut {
		if err := writeJSON(w, result); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w, comparison.New(pair, result, outputWidth).View())
	}

	if sessions == nil {
		return nil
	}
	saved := sessions.Save(models.CapacityPlanningSession{
		Baseline:         pair.Baseline,
		Optimized:        pair.Optimized,
		ActiveTemplateID: pair.Baseline.TemplateID,
	}, now)
	if !jsonOut {
		if saved == nil {
			fmt.Fprintln(w, "Session not saved: storage unavailable.")
		} else {
			fmt.Fprintln(w, "Session saved.")
		}
	}
	return nil
}
