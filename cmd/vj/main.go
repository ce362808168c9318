package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vj-go/internal/app"
	"vj-go/internal/config"
	"vj-go/internal/model"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// tripFlag is the --trip value shared by every command that works on a
// trip. 0 means the active trip.
var tripFlag int

// newApp reads the config and creates a JournalApp. The caller must call Close.
// operation identifies the CLI command being run (e.g. "AddPhoto", "ShowLog").
func newApp(operation string) (*app.JournalApp, error) {
	paths, err := app.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("resolving paths: %w", err)
	}

	cfg, err := config.ReadFromFile(paths.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewJournalApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// withApp runs fn against a freshly opened app and closes it afterwards,
// reporting a failed save on close when fn itself succeeded.
func withApp(operation string, fn func(a *app.JournalApp) error) error {
	a, err := newApp(operation)
	if err != nil {
		return err
	}
	runErr := fn(a)
	closeErr := a.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

var rootCmd = &cobra.Command{
	Use:          "vj",
	Short:        "Vacation journal: trips, photos, expenses, notes and daily logs",
	SilenceUsage: true,
}

// saveCmd writes the journal even when auto_save is off.
var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the journal now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("Save", func(a *app.JournalApp) error {
			if err := a.Save(); err != nil {
				return err
			}
			fmt.Println("Journal saved.")
			return nil
		})
	},
}

func parseID(name, value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return id, nil
}

// parseDay reads a YYYY-MM-DD date; an empty value means today.
func parseDay(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return model.Day(time.Now()), nil
	}
	return model.ParseDate(strings.TrimSpace(value))
}

// parseDateTime reads "YYYY-MM-DD HH:MM" or a bare date (midnight).
// An empty value means now.
func parseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(model.DateLayout, value, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")", value)
}

// splitTags turns "a, b,,c" into [a b c].
func splitTags(value string) []string {
	var tags []string
	for _, t := range strings.Split(value, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&tripFlag, "trip", "t", 0, "Trip ID (default: the active trip)")
	rootCmd.AddCommand(saveCmd)
}
