// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	csvutil "fjacquet/finsight/internal/common"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"
	"fjacquet/finsight/internal/store"
	"fjacquet/finsight/internal/validation"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateFormat rejects formats Render cannot produce.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	return validation.OutputFormat(format, FormatText, FormatJSON, FormatYAML)
}

// Render writes value as JSON or YAML, or calls text for the text format.
func Render(w io.Writer, format string, value interface{}, text func(io.Writer) error) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return text(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format '%s' (use text, json or yaml)", format)
	}
}

// LoadTransactions returns the user's transactions. With input set, they are
// read from that CSV file instead of the store; rows belonging to other users
// are skipped unless they carry no user id.
func LoadTransactions(ctx context.Context, s store.TransactionStore, userID, input string, logger logging.Logger) ([]models.Transaction, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if input == "" {
		return s.List(ctx, userID)
	}
	if err := validation.InputFile(input); err != nil {
		return nil, err
	}

	rows, err := csvutil.ReadCSVFile[models.Transaction](input, csvutil.DefaultDelimiter, logger)
	if err != nil {
		return nil, fmt.Errorf("error reading transactions from %s: %w", input, err)
	}
	out := make([]models.Transaction, 0, len(rows))
	for _, tx := range rows {
		if tx.UserID != "" && tx.UserID != userID {
			continue
		}
		out = append(out, tx)
	}
	logger.Info("Loaded transactions from file",
		logging.F(logging.FieldPath, input),
		logging.F(logging.FieldCount, len(out)))
	return out, nil
}
