package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vj-go/internal/app"
)

var currencyCmd = &cobra.Command{
	Use:   "currency",
	Short: "Exchange rates and conversion",
}

var currencyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show exchange rates (units per USD)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("ListRates", func(a *app.JournalApp) error {
			for _, r := range a.Rates() {
				fmt.Printf("%-4s %s\n", r.Code, r.Rate.String())
			}
			return nil
		})
	},
}

var currencySetCmd = &cobra.Command{
	Use:   "set CODE RATE",
	Short: "Add a currency or change its rate (units per USD)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rate, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		return withApp("SetRate", func(a *app.JournalApp) error {
			if err := a.SetRate(args[0], rate); err != nil {
				return err
			}
			fmt.Printf("1 USD = %s %s\n", rate.String(), args[0])
			return nil
		})
	},
}

var currencyConvertCmd = &cobra.Command{
	Use:   "convert AMOUNT FROM TO",
	Short: "Convert an amount between currencies",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		return withApp("Convert", func(a *app.JournalApp) error {
			got := a.Convert(amount, args[1], args[2])
			fmt.Printf("%s %s = %s %s\n", amount.StringFixed(2), args[1], got.StringFixed(2), args[2])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(currencyCmd)
	currencyCmd.AddCommand(currencyListCmd, currencySetCmd, currencyConvertCmd)
}
