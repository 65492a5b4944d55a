package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fjacquet/finsight/internal/currencyutils"
	"fjacquet/finsight/internal/dateutils"
	"fjacquet/finsight/internal/models"

	"github.com/shopspring/decimal"
)

var (
	dominanceThreshold     = decimal.NewFromInt(35)
	duplicateAmountWindow  = decimal.NewFromInt(1)
	foodSpendLimit         = decimal.NewFromInt(300)
	impulseSpendLimit      = decimal.NewFromInt(200)
	foodKeywords           = []string{"food", "dining", "restaurant", "groceries", "coffee"}
	subscriptionServices   = []string{"netflix", "spotify", "prime", "disney"}
	impulseKeywords        = []string{"impulse", "shopping", "entertainment", "hobby"}
	maxSubscriptionsBefore = 3
)

const (
	maxCategories      = 15
	duplicateDayWindow = 3
)

type categoryShare struct {
	Category   string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

// CategorySpending reports a category holding more than 35% of all expense,
// and separately an expense spread over more than 15 categories.
func CategorySpending(in Input) []models.Insight {
	exp := expenses(in.Transactions)
	if len(exp) == 0 {
		return nil
	}

	var order []string
	sums := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, t := range exp {
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	shares := make([]categoryShare, 0, len(order))
	for _, c := range order {
		pct, _ := currencyutils.Percent(sums[c], total)
		shares = append(shares, categoryShare{
			Category:   c,
			Amount:     sums[c],
			Percentage: pct,
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percentage.GreaterThan(shares[j].Percentage)
	})

	var insights []models.Insight
	top := shares[0]
	if top.Percentage.GreaterThan(dominanceThreshold) {
		insights = append(insights, models.Insight{
			Kind:       models.KindCategoryDominance,
			Title:      "Category Dominance",
			Message:    fmt.Sprintf("%s makes up %s%% of your expenses", top.Category, top.Percentage.StringFixed(1)),
			Icon:       "🎯",
			Severity:   models.SeverityMedium,
			Confidence: 0.95,
			Action:     "Consider diversifying your spending",
			Data: map[string]interface{}{
				"category":   top.Category,
				"amount":     top.Amount.InexactFloat64(),
				"percentage": top.Percentage.InexactFloat64(),
			},
		})
	}

	if len(shares) > maxCategories {
		insights = append(insights, models.Insight{
			Kind:       models.KindCategorySpread,
			Title:      "Too Many Categories",
			Message:    "You have expenses spread across many categories",
			Icon:       "📋",
			Severity:   models.SeverityLow,
			Confidence: 0.6,
			Action:     "Consider consolidating similar categories",
			Data:       map[string]interface{}{"categoryCount": len(shares)},
		})
	}

	return insights
}

// Duplicates compares every unordered pair of expenses and reports pairs in
// the same category whose amounts differ by less than 1.00 and whose dates are
// less than 3 days apart. The pairwise scan is O(n²) in the number of
// expenses, which is fine for a single person's history but should not be run
// over bulk multi-user data.
func Duplicates(in Input) []models.Insight {
	exp := expenses(in.Transactions)

	type dated struct {
		tx models.Transaction
		at time.Time
		ok bool
	}
	parsed := make([]dated, len(exp))
	for i, t := range exp {
		at, err := t.ParsedDate()
		parsed[i] = dated{tx: t, at: at, ok: err == nil}
	}

	var insights []models.Insight
	for i := 0; i < len(parsed); i++ {
		for j := i + 1; j < len(parsed); j++ {
			a, b := parsed[i], parsed[j]
			if !a.ok || !b.ok || a.tx.Category != b.tx.Category {
				continue
			}
			if !a.tx.Amount.Sub(b.tx.Amount).Abs().LessThan(duplicateAmountWindow) {
				continue
			}
			days := dateutils.DaysBetween(a.at, b.at)
			if days < 0 {
				days = -days
			}
			if days >= duplicateDayWindow {
				continue
			}

			first, second := transactionData(a.tx), transactionData(b.tx)
			first["date"], second["date"] = dateutils.ShortDay(a.at), dateutils.ShortDay(b.at)
			insights = append(insights, models.Insight{
				Kind:       models.KindDuplicateAlert,
				Title:      "Possible Duplicate Expense",
				Message:    fmt.Sprintf("Similar %s expenses found within a few days", a.tx.Category),
				Icon:       "🔍",
				Severity:   models.SeverityLow,
				Confidence: 0.6,
				Action:     "Check if these are separate expenses",
				Data:       map[string]interface{}{"first": first, "second": second},
			})
		}
	}
	return insights
}

// BudgetTips runs three keyword checks over expense categories and
// descriptions: food spend above 300, more than 3 subscription payments, and
// impulse-type spend above 200.
func BudgetTips(in Input) []models.Insight {
	foodSpend, impulseSpend := decimal.Zero, decimal.Zero
	subscriptions := 0

	for _, t := range expenses(in.Transactions) {
		category := strings.ToLower(t.Category)
		description := strings.ToLower(t.Description)

		if containsAny(category, foodKeywords) {
			foodSpend = foodSpend.Add(t.Amount)
		}
		if containsAny(category, impulseKeywords) {
			impulseSpend = impulseSpend.Add(t.Amount)
		}
		if strings.Contains(description, "subscription") || strings.Contains(category, "subscription") ||
			containsAny(description, subscriptionServices) || containsAny(category, subscriptionServices) {
			subscriptions++
		}
	}

	var insights []models.Insight
	if foodSpend.GreaterThan(foodSpendLimit) {
		insights = append(insights, models.Insight{
			Kind:       models.KindBudgetTip,
			Title:      "Food Spending",
			Message:    "Your food expenses seem high",
			Icon:       "🍽️",
			Severity:   models.SeverityLow,
			Confidence: 0.6,
			Action:     "Try meal planning to save on food costs",
		})
	}
	if subscriptions > maxSubscriptionsBefore {
		insights = append(insights, models.Insight{
			Kind:       models.KindSubscriptionAlert,
			Title:      "Multiple Subscriptions",
			Message:    "You have several subscription services",
			Icon:       "🔄",
			Severity:   models.SeverityLow,
			Confidence: 0.7,
			Action:     "Review and cancel unused subscriptions",
		})
	}
	if impulseSpend.GreaterThan(impulseSpendLimit) {
		insights = append(insights, models.Insight{
			Kind:       models.KindImpulseSpending,
			Title:      "Impulse Spending",
			Message:    "You might be making impulse purchases",
			Icon:       "🛍️",
			Severity:   models.SeverityMedium,
			Confidence: 0.6,
			Action:     "Implement a 24-hour rule for non-essential purchases",
		})
	}
	return insights
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
