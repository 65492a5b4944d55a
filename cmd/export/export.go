// Package export implements the export command.
package export

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/finsight/cmd/root"
	csvutil "fjacquet/finsight/internal/common"
	"fjacquet/finsight/internal/fileutils"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"
	"fjacquet/finsight/internal/validation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	format string
	output string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the user's transactions as CSV or YAML",
	RunE:  run,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format: csv or yaml")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
}

func run(cmd *cobra.Command, _ []string) error {
	if err := validation.OutputFormat(format, "csv", "yaml"); err != nil {
		return err
	}
	c, err := root.NewContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	txs, err := c.GetStore().List(cmd.Context(), root.SharedFlags.UserID)
	if err != nil {
		return err
	}

	if output != "" && strings.EqualFold(format, "csv") {
		if err := csvutil.WriteCSVFile(output, txs, csvutil.DefaultDelimiter, c.GetLogger()); err != nil {
			return err
		}
		c.GetLogger().Info("Exported transactions",
			logging.F(logging.FieldPath, output),
			logging.F(logging.FieldCount, len(txs)))
		return nil
	}

	if output == "" {
		return Write(cmd.OutOrStdout(), format, txs)
	}
	err = fileutils.WriteFileAtomic(output, 0o600, func(w io.Writer) error {
		return Write(w, format, txs)
	})
	if err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	c.GetLogger().Info("Exported transactions",
		logging.F(logging.FieldPath, output),
		logging.F(logging.FieldCount, len(txs)))
	return nil
}

// Write encodes transactions in the given format.
func Write(w io.Writer, format string, txs []models.Transaction) error {
	switch strings.ToLower(format) {
	case "csv":
		return csvutil.WriteCSV(w, txs, csvutil.DefaultDelimiter)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(txs); err != nil {
			return fmt.Errorf("error writing YAML data: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format '%s' (use csv or yaml)", format)
	}
}
