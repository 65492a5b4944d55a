package insights

import (
	"fmt"
	"math"

	"fjacquet/finsight/internal/currencyutils"
	"fjacquet/finsight/internal/models"

	"github.com/shopspring/decimal"
)

var (
	lowSavingsRate      = decimal.NewFromInt(10)
	excellentSavingRate = decimal.NewFromInt(30)
)

const (
	consistencyMinIncomes  = 3
	variabilityThreshold   = 30.0
	recommendedSavingsRate = 20
)

// SavingsRate returns (income-expense)/income*100 over all transactions. The
// boolean is false when there is no income, in which case no rate exists.
func SavingsRate(transactions []models.Transaction) (decimal.Decimal, bool) {
	totals := models.ComputeTotals(transactions)
	return currencyutils.Percent(totals.Balance, totals.Income)
}

// SavingsSuggestion reports a low (<10%) or excellent (>30%) savings rate.
// Rates between 10% and 30% inclusive produce nothing.
func SavingsSuggestion(in Input) []models.Insight {
	rate, ok := SavingsRate(in.Transactions)
	if !ok {
		return nil
	}

	switch {
	case rate.LessThan(lowSavingsRate):
		return []models.Insight{{
			Kind:       models.KindSavingsAlert,
			Title:      "Low Savings Rate",
			Message:    fmt.Sprintf("You're saving only %s%% of your income", rate.StringFixed(1)),
			Icon:       "💰",
			Severity:   models.SeverityHigh,
			Confidence: 0.9,
			Action:     fmt.Sprintf("Aim to save at least %d%% of your income", recommendedSavingsRate),
			Data: map[string]interface{}{
				"savingsRate": rate.InexactFloat64(),
				"targetRate":  recommendedSavingsRate,
			},
		}}
	case rate.GreaterThan(excellentSavingRate):
		return []models.Insight{{
			Kind:       models.KindSavingsSuccess,
			Title:      "Excellent Savings",
			Message:    fmt.Sprintf("Great job! You're saving %s%% of your income", rate.StringFixed(1)),
			Icon:       "🎉",
			Severity:   models.SeverityInfo,
			Confidence: 0.95,
			Action:     "Consider investing your savings",
			Data: map[string]interface{}{
				"savingsRate": rate.InexactFloat64(),
			},
		}}
	}
	return nil
}

// IncomeConsistency measures the coefficient of variation of monthly income
// over months that had any income, and warns when it exceeds 30%.
func IncomeConsistency(in Input) []models.Insight {
	incomeCount := 0
	for _, t := range in.Transactions {
		if t.IsIncome() {
			incomeCount++
		}
	}
	if incomeCount < consistencyMinIncomes {
		return nil
	}

	var monthly []float64
	for _, m := range in.Months {
		if m.Income.IsPositive() {
			monthly = append(monthly, m.Income.InexactFloat64())
		}
	}
	if len(monthly) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range monthly {
		mean += v
	}
	mean /= float64(len(monthly))

	variance := 0.0
	for _, v := range monthly {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(monthly))
	coefficient := math.Sqrt(variance) / mean * 100

	if coefficient <= variabilityThreshold {
		return nil
	}

	return []models.Insight{{
		Kind:       models.KindIncomeVariability,
		Title:      "Irregular Income",
		Message:    "Your income varies significantly month-to-month",
		Icon:       "📊",
		Severity:   models.SeverityMedium,
		Confidence: 0.8,
		Action:     "Consider building a larger emergency fund",
		Data: map[string]interface{}{
			"averageIncome":  mean,
			"variability":    fmt.Sprintf("%.1f%%", coefficient),
			"monthsAnalyzed": len(monthly),
		},
	}}
}
