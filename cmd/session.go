// ABOUTME: Session commands for the locally saved planning session
// ABOUTME: Shows or clears the session the wizard stores in the config directory

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/markalston/capacity-planner/internal/tui/comparison"
	"github.com/markalston/capacity-planner/internal/tui/styles"
	"github.com/markalston/capacity-planner/models"
	"github.com/markalston/capacity-planner/services"
	"github.com/markalston/capacity-planner/storage"
	"github.com/spf13/cobra"
)

var sessionDir string

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the saved planning session",
	Long: `Manage the planning session saved by the wizard.

Sessions are stored under $XDG_CONFIG_HOME/capacity-planner (default ~/.config/capacity-planner).`,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSessionShow(os.Stdout, openLocalSessions(), IsJSONOutput(), time.Now())
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSessionClear(os.Stdout, openLocalSessions())
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionClearCmd)
	sessionCmd.PersistentFlags().StringVar(&sessionDir, "session-dir", "", "Session directory (default: XDG config dir)")
}

// openLocalSessions returns the file-backed session store. An unresolvable
// directory yields an unavailable store.
func openLocalSessions() *services.SessionStore {
	dir := sessionDir
	if dir == "" {
		dir = storage.DefaultDir()
	}
	if dir == "" {
		return services.NewSessionStore(nil)
	}
	return services.NewSessionStore(storage.NewFile(dir))
}

func runSessionShow(w io.Writer, sessions *services.SessionStore, jsonOut bool, now time.Time) error {
	session := sessions.Load()
	if session == nil {
		if jsonOut {
			return writeJSON(w, nil)
		}
		fmt.Fprintln(w, "No saved session. Run 'capacity-planner wizard' to create one.")
		return nil
	}

	if jsonOut {
		return writeJSON(w, session)
	}

	pair := models.ScenarioPair{Baseline: session.Baseline, Optimized: session.Optimized}
	result := services.CompareScenarios(pair)

	fmt.Fprintln(w, styles.Subtitle.Render(fmt.Sprintf("Saved %s (%s), template %s",
		session.UpdatedAt.Format(time.RFC3339),
		humanize.RelTime(session.UpdatedAt, now, "ago", "from now"),
		session.ActiveTemplateID)))
	fmt.Fprintln(w, comparison.New(pair, &result, outputWidth).View())
	return nil
}

func runSessionClear(w io.Writer, sessions *services.SessionStore) error {
	if sessions.Load() == nil {
		fmt.Fprintln(w, "No saved session.")
		return nil
	}
	sessions.Clear()
	if sessions.Load() != nil {
		return fmt.Errorf("failed to clear saved session")
	}
	fmt.Fprintln(w, "Saved session cleared.")
	return nil
}
