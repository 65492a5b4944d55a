// Package categorizer maps free-text fragments onto the fixed category
// taxonomy. Expense and income text are classified against separate, ordered
// keyword tables; spoken category names are resolved through an alias map.
package categorizer

import (
	"strings"

	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"
	"fjacquet/finsight/internal/textutils"
)

// Classifier performs keyword classification and alias normalization.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	expense []models.CategoryConfig
	income  []models.CategoryConfig
	aliases map[string]string
	logger  logging.Logger
}

// NewClassifier creates a classifier over the given tables. Keywords and
// alias keys are lower-cased once here so matching stays case-insensitive.
func NewClassifier(tables models.CategoryTables, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	c := &Classifier{
		expense: lowerTable(tables.Expense),
		income:  lowerTable(tables.Income),
		aliases: make(map[string]string, len(tables.Aliases)),
		logger:  logger.WithField(logging.FieldComponent, "categorizer"),
	}
	for k, v := range tables.Aliases {
		c.aliases[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return c
}

// NewDefaultClassifier creates a classifier over the built-in tables.
func NewDefaultClassifier(logger logging.Logger) *Classifier {
	return NewClassifier(DefaultTables(), logger)
}

// Classify returns the first category of the table for txType whose keyword
// occurs anywhere in text. Unmatched expense text yields "Other" and unmatched
// income text "Other Income".
func (c *Classifier) Classify(txType models.TransactionType, text string) string {
	if txType == models.TypeIncome {
		return c.match(c.income, text, models.CategoryOtherIncome)
	}
	return c.match(c.expense, text, models.CategoryOther)
}

// ClassifyExpense is Classify for expense text.
func (c *Classifier) ClassifyExpense(text string) string {
	return c.Classify(models.TypeExpense, text)
}

// ClassifyIncome is Classify for income text.
func (c *Classifier) ClassifyIncome(text string) string {
	return c.Classify(models.TypeIncome, text)
}

// Normalize resolves a spoken category name to its canonical label. Names
// without an alias are returned trimmed with the first letter upper-cased.
func (c *Classifier) Normalize(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := c.aliases[key]; ok {
		return canonical
	}
	return textutils.Capitalize(name)
}

func (c *Classifier) match(table []models.CategoryConfig, text, fallback string) string {
	lower := strings.ToLower(text)
	for _, category := range table {
		for _, keyword := range category.Keywords {
			if keyword != "" && strings.Contains(lower, keyword) {
				c.logger.Debug("Classified text by keyword",
					logging.F(logging.FieldCategory, category.Name),
					logging.F("keyword", keyword))
				return category.Name
			}
		}
	}
	return fallback
}

func lowerTable(table []models.CategoryConfig) []models.CategoryConfig {
	out := make([]models.CategoryConfig, len(table))
	for i, category := range table {
		keywords := make([]string, len(category.Keywords))
		for j, k := range category.Keywords {
			keywords[j] = strings.ToLower(strings.TrimSpace(k))
		}
		out[i] = models.CategoryConfig{Name: category.Name, Keywords: keywords}
	}
	return out
}
