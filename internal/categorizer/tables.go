package categorizer

import (
	"fmt"
	"os"

	"fjacquet/finsight/internal/apperror"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultTables returns the built-in taxonomy. Order matters: "show" sits in
// Entertainment, so any text containing it before a later keyword classifies
// there.
func DefaultTables() models.CategoryTables {
	return models.CategoryTables{
		Expense: []models.CategoryConfig{
			{Name: "Food", Keywords: []string{"food", "restaurant", "dining", "lunch", "dinner", "breakfast", "pizza", "burger", "coffee", "groceries", "grocery", "snack", "meal"}},
			{Name: "Transportation", Keywords: []string{"uber", "lyft", "taxi", "bus", "train", "subway", "gas", "fuel", "parking", "transport", "ride"}},
			{Name: "Shopping", Keywords: []string{"amazon", "walmart", "target", "store", "mall", "clothes", "shoes", "shopping", "purchase"}},
			{Name: "Entertainment", Keywords: []string{"movie", "netflix", "spotify", "game", "concert", "show", "entertainment", "fun"}},
			{Name: "Bills & Utilities", Keywords: []string{"rent", "mortgage", "electricity", "water", "internet", "phone", "bill", "utility"}},
			{Name: "Healthcare", Keywords: []string{"doctor", "hospital", "pharmacy", "medicine", "medical", "health", "dentist"}},
			{Name: "Education", Keywords: []string{"school", "college", "university", "course", "class", "book", "education", "tuition"}},
			{Name: "Travel", Keywords: []string{"hotel", "flight", "airbnb", "vacation", "trip", "travel", "holiday"}},
		},
		Income: []models.CategoryConfig{
			{Name: "Salary", Keywords: []string{"salary", "paycheck", "wage", "pay", "employment"}},
			{Name: "Freelance", Keywords: []string{"freelance", "contract", "gig", "project"}},
			{Name: "Business", Keywords: []string{"business", "sales", "revenue"}},
			{Name: "Investment", Keywords: []string{"investment", "dividend", "stock", "interest"}},
			{Name: "Gift", Keywords: []string{"gift", "present"}},
			{Name: "Refund", Keywords: []string{"refund", "return", "reimbursement"}},
		},
		Aliases: map[string]string{
			"food":           "Food",
			"transport":      "Transportation",
			"transportation": "Transportation",
			"shopping":       "Shopping",
			"entertainment":  "Entertainment",
			"bills":          "Bills & Utilities",
			"utilities":      "Bills & Utilities",
			"rent":           "Bills & Utilities",
			"health":         "Healthcare",
			"healthcare":     "Healthcare",
			"medical":        "Healthcare",
			"education":      "Education",
			"travel":         "Travel",
			"salary":         "Salary",
			"income":         "Other Income",
		},
	}
}

// LoadTables reads a YAML override file. Sections missing from the file keep
// their built-in values, so a file may replace only the aliases, for example.
func LoadTables(path string, logger logging.Logger) (models.CategoryTables, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return tables, fmt.Errorf("error reading categories file: %w", err)
	}

	var override models.CategoryTables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return tables, &apperror.ParseError{Component: "categorizer", Field: "categories file", Value: path, Err: err}
	}

	if len(override.Expense) > 0 {
		tables.Expense = override.Expense
	}
	if len(override.Income) > 0 {
		tables.Income = override.Income
	}
	if len(override.Aliases) > 0 {
		tables.Aliases = override.Aliases
	}

	logger.Info("Loaded category tables",
		logging.F(logging.FieldPath, path),
		logging.F("expense_categories", len(tables.Expense)),
		logging.F("income_categories", len(tables.Income)),
		logging.F("aliases", len(tables.Aliases)))
	return tables, nil
}
