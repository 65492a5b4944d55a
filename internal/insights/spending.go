package insights

import (
	"fmt"
	"math"
	"sort"

	"fjacquet/finsight/internal/currencyutils"
	"fjacquet/finsight/internal/models"

	"github.com/shopspring/decimal"
)

const (
	trendMinTransactions = 10
	trendThreshold       = 15.0
	trendHighThreshold   = 30.0
	unusualMinExpenses   = 5
	unusualMultiplier    = 3
)

// SpendingTrend compares the most recent month's expense with the mean
// monthly expense. It needs at least 10 transactions and 2 months, and fires
// when the change exceeds 15%.
func SpendingTrend(in Input) []models.Insight {
	if len(in.Transactions) < trendMinTransactions || len(in.Months) < 2 {
		return nil
	}

	avg := meanMonthlyExpense(in.Months)
	if avg == 0 {
		return nil
	}

	last := in.Months[len(in.Months)-1]
	lastExpense := last.Expense.InexactFloat64()
	change := (lastExpense - avg) / avg * 100
	if math.Abs(change) <= trendThreshold {
		return nil
	}

	severity := models.SeverityMedium
	if math.Abs(change) > trendHighThreshold {
		severity = models.SeverityHigh
	}

	title, icon, direction, action := "Spending Decreased", "📉", "lower", "Great job maintaining budget"
	if change > 0 {
		title, icon, direction, action = "Spending Increased", "📈", "higher", "Review recent expenses"
	}

	return []models.Insight{{
		Kind:       models.KindSpendingTrend,
		Title:      title,
		Message:    fmt.Sprintf("Your spending last month was %.0f%% %s than average", math.Abs(change), direction),
		Icon:       icon,
		Severity:   severity,
		Confidence: 0.8,
		Action:     action,
		Data: map[string]interface{}{
			"month":   last.Key,
			"amount":  lastExpense,
			"average": avg,
			"change":  change,
		},
	}}
}

// UnusualSpending flags expenses larger than three times the median expense.
// The median is the upper-middle element for even counts. When limit is
// positive only the largest limit outliers are reported, so that one rule
// cannot crowd every other insight out of the ranked list.
func UnusualSpending(limit int) RuleFunc {
	return func(in Input) []models.Insight {
		exp := expenses(in.Transactions)
		if len(exp) < unusualMinExpenses {
			return nil
		}

		amounts := make([]decimal.Decimal, len(exp))
		for i, t := range exp {
			amounts[i] = t.Amount
		}
		sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })
		threshold := amounts[len(amounts)/2].Mul(decimal.NewFromInt(unusualMultiplier))

		var outliers []models.Transaction
		for _, t := range exp {
			if t.Amount.GreaterThan(threshold) {
				outliers = append(outliers, t)
			}
		}
		if limit > 0 && len(outliers) > limit {
			sort.SliceStable(outliers, func(i, j int) bool {
				return outliers[i].Amount.GreaterThan(outliers[j].Amount)
			})
			outliers = outliers[:limit]
		}

		insights := make([]models.Insight, 0, len(outliers))
		for _, t := range outliers {
			insights = append(insights, models.Insight{
				Kind:       models.KindUnusualSpending,
				Title:      "Large Transaction Alert",
				Message:    fmt.Sprintf("Unusually large %s expense: %s", t.Category, currencyutils.FormatAmount(t.Amount, in.Profile.Currency())),
				Icon:       "⚠️",
				Severity:   models.SeverityMedium,
				Confidence: 0.7,
				Action:     "Verify this was a planned expense",
				Data:       transactionData(t),
			})
		}
		return insights
	}
}

// Forecast projects next month's spending as the mean monthly expense, with
// the trend direction taken from the first and last months.
func Forecast(in Input) []models.Insight {
	if len(in.Months) < 2 {
		return nil
	}

	avg := meanMonthlyExpense(in.Months)
	first := in.Months[0].Expense
	last := in.Months[len(in.Months)-1].Expense
	increasing := last.GreaterThan(first)

	trend, action := "decreasing", "Maintain your spending discipline"
	if increasing {
		trend, action = "increasing", "Watch for spending creep"
	}

	return []models.Insight{{
		Kind:       models.KindFuturePrediction,
		Title:      "Spending Forecast",
		Message:    fmt.Sprintf("Based on past %d months, expect to spend around %s%.2f monthly", len(in.Months), in.Profile.Currency(), avg),
		Icon:       "🔮",
		Severity:   models.SeverityInfo,
		Confidence: 0.7,
		Action:     action,
		Data: map[string]interface{}{
			"averageMonthly": avg,
			"trend":          trend,
			"monthsAnalyzed": len(in.Months),
		},
	}}
}
