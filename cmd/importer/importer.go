// Package importer implements the import command.
package importer

import (
	"context"
	"fmt"

	"fjacquet/finsight/cmd/root"
	"fjacquet/finsight/internal/apperror"
	csvutil "fjacquet/finsight/internal/common"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"
	"fjacquet/finsight/internal/store"
	"fjacquet/finsight/internal/validation"

	"github.com/spf13/cobra"
)

var input string

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import transactions from a CSV file into the store",
	Long: `Import transactions from a CSV file with the columns
ID,UserID,Type,Amount,Category,Description,Date. Rows are assigned to the
selected user and receive fresh ids; invalid rows are skipped and reported.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file to import")
	_ = Cmd.MarkFlagRequired("input")
}

// Summary counts the outcome of an import.
type Summary struct {
	Imported int
	Skipped  int
}

func run(cmd *cobra.Command, _ []string) error {
	if err := validation.InputFile(input); err != nil {
		return err
	}
	c, err := root.NewContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	rows, err := csvutil.ReadCSVFile[models.Transaction](input, csvutil.DefaultDelimiter, c.GetLogger())
	if err != nil {
		return err
	}

	summary, err := Import(cmd.Context(), c.GetStore(), root.SharedFlags.UserID, rows, c.GetLogger())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions (%d skipped)\n", summary.Imported, summary.Skipped)
	return nil
}

// Import creates rows for userID. Validation failures skip the row; any
// other store error aborts the import.
func Import(ctx context.Context, s store.TransactionStore, userID string, rows []models.Transaction, logger logging.Logger) (Summary, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	var summary Summary
	for i, tx := range rows {
		tx.ID = ""
		tx.UserID = userID
		if _, err := s.Create(ctx, tx); err != nil {
			if apperror.IsValidation(err) {
				summary.Skipped++
				logger.Warn("Skipping invalid row",
					logging.F("row", i+2),
					logging.F(logging.FieldReason, err.Error()))
				continue
			}
			return summary, err
		}
		summary.Imported++
	}
	return summary, nil
}
