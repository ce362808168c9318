package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vj-go/internal/app"
	"vj-go/internal/model"
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Manage trips",
}

var (
	tripDestination string
	tripStart       string
	tripEnd         string
)

var tripCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseDay(tripStart)
		if err != nil {
			return err
		}
		end := start
		if tripEnd != "" {
			if end, err = parseDay(tripEnd); err != nil {
				return err
			}
		}
		return withApp("CreateTrip", func(a *app.JournalApp) error {
			trip, err := a.CreateTrip(args[0], tripDestination, start, end)
			if err != nil {
				return err
			}
			fmt.Printf("Created trip %d: %s\n", trip.ID, trip.Name)
			if trip.IsActive {
				fmt.Println("It is now the active trip.")
			}
			return nil
		})
	},
}

var tripListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trips",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("ListTrips", func(a *app.JournalApp) error {
			trips := a.ListTrips()
			if len(trips) == 0 {
				fmt.Println("No trips yet.")
				return nil
			}
			for _, t := range trips {
				printTripLine(t)
			}
			return nil
		})
	},
}

var tripShowCmd = &cobra.Command{
	Use:   "show [ID]",
	Short: "Show a trip (default: the active trip)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := tripFlag
		if len(args) == 1 {
			var err error
			if id, err = parseID("trip id", args[0]); err != nil {
				return err
			}
		}
		return withApp("ShowTrip", func(a *app.JournalApp) error {
			trip, err := a.GetTrip(id)
			if err != nil {
				return err
			}
			photos, _ := a.ListPhotos(trip.ID)
			expenses, _ := a.ListExpenses(trip.ID)
			notes, _ := a.ListNotes(trip.ID)
			total, cur, _ := a.ExpenseTotal(trip.ID, "")

			printTripLine(trip)
			fmt.Printf("  Photos:   %d\n", len(photos))
			fmt.Printf("  Expenses: %d (%s %s)\n", len(expenses), total.StringFixed(2), cur)
			fmt.Printf("  Notes:    %d\n", len(notes))
			return nil
		})
	},
}

var tripUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change a trip's name, destination or dates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("trip id", args[0])
		if err != nil {
			return err
		}
		return withApp("UpdateTrip", func(a *app.JournalApp) error {
			trip, err := a.GetTrip(id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				trip.Name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("destination") {
				trip.Destination = tripDestination
			}
			if cmd.Flags().Changed("start") {
				if trip.StartDate, err = parseDay(tripStart); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				if trip.EndDate, err = parseDay(tripEnd); err != nil {
					return err
				}
			}
			if err := a.UpdateTrip(trip.ID, trip.Name, trip.Destination, trip.StartDate, trip.EndDate); err != nil {
				return err
			}
			fmt.Printf("Updated trip %d.\n", trip.ID)
			return nil
		})
	},
}

var tripDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a trip with all its photos, expenses, notes and logs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("trip id", args[0])
		if err != nil {
			return err
		}
		return withApp("DeleteTrip", func(a *app.JournalApp) error {
			if err := a.DeleteTrip(id); err != nil {
				return err
			}
			fmt.Printf("Deleted trip %d.\n", id)
			return nil
		})
	},
}

var tripUseCmd = &cobra.Command{
	Use:   "use ID",
	Short: "Make a trip the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("trip id", args[0])
		if err != nil {
			return err
		}
		return withApp("UseTrip", func(a *app.JournalApp) error {
			if err := a.UseTrip(id); err != nil {
				return err
			}
			fmt.Printf("Trip %d is now active.\n", id)
			return nil
		})
	},
}

func printTripLine(t model.Trip) {
	marker := " "
	if t.IsActive {
		marker = "*"
	}
	fmt.Printf("%s %d  %-20s  %-15s  %s to %s\n",
		marker, t.ID, t.Name, t.Destination,
		t.StartDate.Format(model.DateLayout), t.EndDate.Format(model.DateLayout))
}

func init() {
	rootCmd.AddCommand(tripCmd)
	tripCmd.AddCommand(tripCreateCmd, tripListCmd, tripShowCmd, tripUpdateCmd, tripDeleteCmd, tripUseCmd)

	for _, c := range []*cobra.Command{tripCreateCmd, tripUpdateCmd} {
		c.Flags().StringVarP(&tripDestination, "destination", "d", "", "Destination")
		c.Flags().StringVar(&tripStart, "start", "", "Start date YYYY-MM-DD (default: today)")
		c.Flags().StringVar(&tripEnd, "end", "", "End date YYYY-MM-DD (default: start date)")
	}
	tripUpdateCmd.Flags().String("name", "", "New name")
}
