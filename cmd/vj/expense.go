package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"vj-go/internal/app"
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Manage trip expenses",
}

var (
	expenseCurrency    string
	expenseDate        string
	expenseCategory    string
	expenseDescription string
)

func parseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", value)
	}
	return amount, nil
}

var expenseAddCmd = &cobra.Command{
	Use:   "add AMOUNT",
	Short: "Record an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		date, err := parseDateTime(expenseDate)
		if err != nil {
			return err
		}
		return withApp("AddExpense", func(a *app.JournalApp) error {
			e, err := a.AddExpense(tripFlag, amount, expenseCurrency, date, expenseCategory, expenseDescription)
			if err != nil {
				return err
			}
			fmt.Printf("Recorded expense %d: %s %s\n", e.ID, e.Amount.StringFixed(2), e.Currency)
			return nil
		})
	},
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the trip's expenses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("ListExpenses", func(a *app.JournalApp) error {
			expenses, err := a.ListExpenses(tripFlag)
			if err != nil {
				return err
			}
			if len(expenses) == 0 {
				fmt.Println("No expenses recorded.")
				return nil
			}
			for _, e := range expenses {
				fmt.Printf("%d  %s  %10s %-3s  %-12s  %s\n",
					e.ID, e.Date.Format("2006-01-02 15:04"), e.Amount.StringFixed(2), e.Currency, e.Category, e.Description)
			}
			return nil
		})
	},
}

var expenseUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("expense id", args[0])
		if err != nil {
			return err
		}
		return withApp("UpdateExpense", func(a *app.JournalApp) error {
			e, err := a.GetExpense(id)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("amount") {
				raw, _ := flags.GetString("amount")
				if e.Amount, err = parseAmount(raw); err != nil {
					return err
				}
			}
			if flags.Changed("currency") {
				e.Currency = expenseCurrency
			}
			if flags.Changed("date") {
				if e.Date, err = parseDateTime(expenseDate); err != nil {
					return err
				}
			}
			if flags.Changed("category") {
				e.Category = expenseCategory
			}
			if flags.Changed("description") {
				e.Description = expenseDescription
			}
			if err := a.UpdateExpense(e); err != nil {
				return err
			}
			fmt.Printf("Updated expense %d.\n", id)
			return nil
		})
	},
}

var expenseDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("expense id", args[0])
		if err != nil {
			return err
		}
		return withApp("DeleteExpense", func(a *app.JournalApp) error {
			if err := a.DeleteExpense(id); err != nil {
				return err
			}
			fmt.Printf("Deleted expense %d.\n", id)
			return nil
		})
	},
}

var expenseTotalCmd = &cobra.Command{
	Use:   "total [CURRENCY]",
	Short: "Total the trip's spending in one currency",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		return withApp("ExpenseTotal", func(a *app.JournalApp) error {
			total, cur, err := a.ExpenseTotal(tripFlag, target)
			if err != nil {
				return err
			}
			fmt.Printf("Total: %s %s\n", total.StringFixed(2), cur)
			return nil
		})
	},
}

var expenseCategoriesCmd = &cobra.Command{
	Use:   "categories [CURRENCY]",
	Short: "Break the trip's spending down by category",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		return withApp("ExpenseCategories", func(a *app.JournalApp) error {
			rows, cur, err := a.ExpenseCategories(tripFlag, target)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("No expenses recorded.")
				return nil
			}
			for _, r := range rows {
				fmt.Printf("%-15s %10s %s\n", r.Category, r.Total.StringFixed(2), cur)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(expenseCmd)
	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd, expenseUpdateCmd, expenseDeleteCmd,
		expenseTotalCmd, expenseCategoriesCmd)

	for _, c := range []*cobra.Command{expenseAddCmd, expenseUpdateCmd} {
		c.Flags().StringVarP(&expenseCurrency, "currency", "c", "", "Currency code (default: default_currency)")
		c.Flags().StringVar(&expenseDate, "date", "", "When, YYYY-MM-DD or \"YYYY-MM-DD HH:MM\" (default: now)")
		c.Flags().StringVar(&expenseCategory, "category", "Other", "Category")
		c.Flags().StringVarP(&expenseDescription, "description", "m", "", "Description")
	}
	expenseUpdateCmd.Flags().String("amount", "", "New amount")
}
