package models

// Severity is the ordinal band used to rank insights.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
	SeverityInfo   Severity = "info"
)

// Rank maps a severity to its sort weight: high=3, medium=2, low=1, info=0.
// Unknown values rank with info.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// InsightKind tags the observation an insight carries.
type InsightKind string

const (
	KindSpendingTrend     InsightKind = "spending_trend"
	KindUnusualSpending   InsightKind = "unusual_spending"
	KindSavingsAlert      InsightKind = "savings_alert"
	KindSavingsSuccess    InsightKind = "savings_success"
	KindCategoryDominance InsightKind = "category_dominance"
	KindCategorySpread    InsightKind = "category_spread"
	KindDuplicateAlert    InsightKind = "duplicate_alert"
	KindFuturePrediction  InsightKind = "future_prediction"
	KindBudgetTip         InsightKind = "budget_tip"
	KindSubscriptionAlert InsightKind = "subscription_alert"
	KindImpulseSpending   InsightKind = "impulse_spending"
	KindIncomeVariability InsightKind = "income_variability"
)

// Insight is one generated observation. Insights are produced fresh on every
// analysis pass and never modified afterwards.
type Insight struct {
	Kind       InsightKind            `json:"type" yaml:"type"`
	Title      string                 `json:"title" yaml:"title"`
	Message    string                 `json:"message" yaml:"message"`
	Icon       string                 `json:"icon" yaml:"icon"`
	Severity   Severity               `json:"severity" yaml:"severity"`
	Confidence float64                `json:"confidence" yaml:"confidence"`
	Action     string                 `json:"action" yaml:"action"`
	Data       map[string]interface{} `json:"data,omitempty" yaml:"data,omitempty"`
}
