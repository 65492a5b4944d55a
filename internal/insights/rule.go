// Package insights implements the rule-based financial insight engine: a
// registry of independent rules evaluated over a read-only snapshot of the
// user's transactions, a ranker that filters and orders their output, and the
// savings-based health score.
package insights

import (
	"fjacquet/finsight/internal/models"

	"github.com/shopspring/decimal"
)

// RuleName is the stable tag identifying a rule.
type RuleName string

const (
	RuleSpendingTrend     RuleName = "spending_trend"
	RuleUnusualSpending   RuleName = "unusual_spending"
	RuleSavings           RuleName = "savings"
	RuleCategorySpending  RuleName = "category_spending"
	RuleDuplicates        RuleName = "duplicates"
	RuleForecast          RuleName = "forecast"
	RuleBudgetTips        RuleName = "budget_tips"
	RuleIncomeConsistency RuleName = "income_consistency"
)

// Input is the snapshot every rule reads. Rules must not modify it.
type Input struct {
	Transactions []models.Transaction
	Months       []models.MonthlyBucket
	Profile      models.UserProfile
}

// RuleFunc evaluates one rule and returns zero or more candidate insights.
// A rule whose data requirements are not met returns nil.
type RuleFunc func(in Input) []models.Insight

// Rule pairs a RuleFunc with its stable name.
type Rule struct {
	Name     RuleName
	Evaluate RuleFunc
}

// DefaultRules returns the built-in rules in evaluation order.
func DefaultRules(opts Options) []Rule {
	return []Rule{
		{Name: RuleSpendingTrend, Evaluate: SpendingTrend},
		{Name: RuleUnusualSpending, Evaluate: UnusualSpending(opts.UnusualSpendingCap)},
		{Name: RuleSavings, Evaluate: SavingsSuggestion},
		{Name: RuleCategorySpending, Evaluate: CategorySpending},
		{Name: RuleDuplicates, Evaluate: Duplicates},
		{Name: RuleForecast, Evaluate: Forecast},
		{Name: RuleBudgetTips, Evaluate: BudgetTips},
		{Name: RuleIncomeConsistency, Evaluate: IncomeConsistency},
	}
}

func expenses(transactions []models.Transaction) []models.Transaction {
	var out []models.Transaction
	for _, t := range transactions {
		if t.IsExpense() {
			out = append(out, t)
		}
	}
	return out
}

func meanMonthlyExpense(months []models.MonthlyBucket) float64 {
	if len(months) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, m := range months {
		sum = sum.Add(m.Expense)
	}
	return sum.InexactFloat64() / float64(len(months))
}

func transactionData(t models.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"id":          t.ID,
		"type":        string(t.Type),
		"amount":      t.Amount.InexactFloat64(),
		"category":    t.Category,
		"description": t.Description,
		"date":        t.Date,
	}
}
