// Package score implements the health-score command.
package score

import (
	"fmt"
	"io"

	"fjacquet/finsight/cmd/common"
	"fjacquet/finsight/cmd/root"

	"github.com/spf13/cobra"
)

var (
	format string
	input  string
)

// Result is the machine-readable output of the command.
type Result struct {
	UserID    string `json:"userId" yaml:"user_id"`
	Score     *int   `json:"score" yaml:"score"`
	Available bool   `json:"available" yaml:"available"`
}

// Cmd represents the score command
var Cmd = &cobra.Command{
	Use:   "score",
	Short: "Print the financial health score (0-100)",
	Long: `Compute the financial health score from the savings rate. The score is
unavailable with fewer than five transactions.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", common.FormatText, "Output format: text, json or yaml")
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Score this CSV file instead of the store")
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

	result := Result{UserID: userID}
	if s, ok := c.GetEngine().HealthScore(txs); ok {
		result.Score = &s
		result.Available = true
	}
	return common.Render(cmd.OutOrStdout(), format, result, func(w io.Writer) error {
		return WriteText(w, result)
	})
}

// WriteText prints the score or explains why there is none.
func WriteText(w io.Writer, r Result) error {
	if !r.Available {
		_, err := fmt.Fprintln(w, "Health score unavailable: at least 5 transactions are needed.")
		return err
	}
	_, err := fmt.Fprintf(w, "Health score for %s: %d/100\n", r.UserID, *r.Score)
	return err
}
