// Package insights implements the insights command.
package insights

import (
	"fmt"
	"io"

	"fjacquet/finsight/cmd/common"
	"fjacquet/finsight/cmd/root"
	"fjacquet/finsight/internal/currencyutils"
	"fjacquet/finsight/internal/insights"

	"github.com/spf13/cobra"
)

var (
	format string
	input  string
)

// Cmd represents the insights command
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Show ranked financial insights",
	Long: `Analyse the user's transactions and print the ranked insights together
with the monthly breakdown and the financial health score.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", common.FormatText, "Output format: text, json or yaml")
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Analyse this CSV file instead of the store")
}

func run(cmd *cobra.Command, _ []string) error {
	if err := common.ValidateFormat(format); err != nil {
		return err
	}
	c, err := root.NewContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	userID := root.SharedFlags.UserID
	txs, err := common.LoadTransactions(cmd.Context(), c.GetStore(), userID, input, c.GetLogger())
	if err != nil {
		return err
	}

	report := c.GetEngine().Analyze(txs, c.Profile(userID))
	return common.Render(cmd.OutOrStdout(), format, report, func(w io.Writer) error {
		return WriteText(w, report, c.Profile(userID).Currency())
	})
}

// WriteText prints a human-readable report.
func WriteText(w io.Writer, report insights.Report, currency string) error {
	if !report.HasData {
		_, err := fmt.Fprintln(w, "Not enough transactions to analyse yet. Add a few more to see insights.")
		return err
	}

	fmt.Fprintf(w, "Income:   %s\n", currencyutils.FormatAmount(report.Totals.Income, currency))
	fmt.Fprintf(w, "Expenses: %s\n", currencyutils.FormatAmount(report.Totals.Expense, currency))
	fmt.Fprintf(w, "Balance:  %s\n", currencyutils.FormatAmount(report.Totals.Balance, currency))
	if report.HealthScore != nil {
		fmt.Fprintf(w, "Health score: %d/100\n", *report.HealthScore)
	}

	if len(report.Months) > 0 {
		fmt.Fprintln(w, "\nMonths:")
		for _, m := range report.Months {
			fmt.Fprintf(w, "  %s  income %s  expenses %s\n",
				m.Key, currencyutils.FormatAmount(m.Income, currency), currencyutils.FormatAmount(m.Expense, currency))
		}
	}

	if len(report.Insights) == 0 {
		_, err := fmt.Fprintln(w, "\nNo insights right now.")
		return err
	}
	fmt.Fprintln(w, "\nInsights:")
	for _, in := range report.Insights {
		fmt.Fprintf(w, "  [%s] %s: %s\n", in.Severity, in.Title, in.Message)
		if in.Action != "" {
			fmt.Fprintf(w, "         → %s\n", in.Action)
		}
	}
	return nil
}
