package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vj-go/internal/app"
	"vj-go/internal/model"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Daily logs: per-day summaries and timelines",
}

var logDatesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List the days with activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("ActivityDates", func(a *app.JournalApp) error {
			dates, err := a.ActivityDates(tripFlag)
			if err != nil {
				return err
			}
			if len(dates) == 0 {
				fmt.Println("No activity recorded.")
				return nil
			}
			for _, d := range dates {
				fmt.Println(d.Format(model.DateLayout))
			}
			return nil
		})
	},
}

// dayArg reads the optional DATE argument, defaulting to today.
func dayArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

var logShowCmd = &cobra.Command{
	Use:   "show [DATE]",
	Short: "Show the daily log for a day (default: today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDay(dayArg(args))
		if err != nil {
			return err
		}
		return withApp("ShowLog", func(a *app.JournalApp) error {
			entry, err := a.ShowLog(tripFlag, date)
			if err != nil {
				return err
			}
			printEntryHeader(entry)
			fmt.Println(entry.Text())
			return nil
		})
	},
}

var logTimelineCmd = &cobra.Command{
	Use:   "timeline [DATE]",
	Short: "Show a day's activity in time order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDay(dayArg(args))
		if err != nil {
			return err
		}
		return withApp("Timeline", func(a *app.JournalApp) error {
			items, err := a.Timeline(tripFlag, date)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No activities recorded for this day.")
				return nil
			}
			for _, it := range items {
				fmt.Printf("%s - %s: %s\n", it.Timestamp.Format("15:04"), it.Kind, it.Description)
			}
			return nil
		})
	},
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the trip's daily logs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("ListLogs", func(a *app.JournalApp) error {
			entries, err := a.ListLogs(tripFlag)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No daily logs yet.")
				return nil
			}
			for _, e := range entries {
				printEntryHeader(e)
			}
			return nil
		})
	},
}

var logEditCmd = &cobra.Command{
	Use:   "edit LOG_ID TEXT",
	Short: "Replace a log's summary with your own text and pin it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("log id", args[0])
		if err != nil {
			return err
		}
		return withApp("EditLog", func(a *app.JournalApp) error {
			if err := a.EditLog(id, args[1]); err != nil {
				return err
			}
			fmt.Printf("Daily log %d pinned.\n", id)
			return nil
		})
	},
}

var logRefreshCmd = &cobra.Command{
	Use:   "refresh LOG_ID",
	Short: "Regenerate a log's summary from current activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("log id", args[0])
		if err != nil {
			return err
		}
		return withApp("RefreshLog", func(a *app.JournalApp) error {
			entry, err := a.RefreshLog(id)
			if err != nil {
				return err
			}
			fmt.Println(entry.Text())
			return nil
		})
	},
}

var logUnpinCmd = &cobra.Command{
	Use:   "unpin LOG_ID",
	Short: "Return a pinned log to automatic summaries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("log id", args[0])
		if err != nil {
			return err
		}
		return withApp("UnpinLog", func(a *app.JournalApp) error {
			entry, err := a.UnpinLog(id)
			if err != nil {
				return err
			}
			fmt.Println(entry.Text())
			return nil
		})
	},
}

func adjacentCmd(use, short string, forward bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [DATE]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDay(dayArg(args))
			if err != nil {
				return err
			}
			return withApp("AdjacentActivityDate", func(a *app.JournalApp) error {
				date, ok, err := a.AdjacentActivityDate(tripFlag, from, forward)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("No other day with activity in that direction.")
					return nil
				}
				fmt.Println(date.Format(model.DateLayout))
				return nil
			})
		},
	}
}

var (
	logPrevCmd = adjacentCmd("prev", "Show the previous day with activity", false)
	logNextCmd = adjacentCmd("next", "Show the next day with activity", true)
)

var logExportCmd = &cobra.Command{
	Use:   "export [DATE]",
	Short: "Export a day as text or CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDay(dayArg(args))
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		return withApp("ExportLog", func(a *app.JournalApp) error {
			out, err := a.ExportLog(tripFlag, date, format)
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Print(out)
				if len(out) > 0 && out[len(out)-1] != '\n' {
					fmt.Println()
				}
				return nil
			}
			if err := os.WriteFile(output, []byte(out), 0644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Printf("Exported %s to %s\n", date.Format(model.DateLayout), output)
			return nil
		})
	},
}

func printEntryHeader(e model.DailyLogEntry) {
	state := "auto"
	if !e.IsAutoGenerated() {
		state = "pinned"
	}
	fmt.Printf("#%d  %s  (%s)\n", e.ID, e.Date.Format(model.DateLayout), state)
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logDatesCmd, logShowCmd, logTimelineCmd, logListCmd, logEditCmd,
		logRefreshCmd, logUnpinCmd, logPrevCmd, logNextCmd, logExportCmd)

	logExportCmd.Flags().StringP("format", "f", "text", "text or csv")
	logExportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}
