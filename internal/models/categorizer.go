package models

// Canonical fallback categories.
const (
	CategoryOther       = "Other"
	CategoryOtherIncome = "Other Income"
)

// CategoryConfig is one entry of a keyword table: a canonical category name
// and the lowercase substrings that select it.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoryTables is the layout of the optional classifier override file.
// Table order is significant: the first category with a matching keyword wins.
type CategoryTables struct {
	Expense []CategoryConfig  `yaml:"expense"`
	Income  []CategoryConfig  `yaml:"income"`
	Aliases map[string]string `yaml:"aliases"`
}
