// Package aggregator groups transactions into calendar-month buckets.
package aggregator

import (
	"sort"

	"fjacquet/finsight/internal/dateutils"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"

	"github.com/shopspring/decimal"
)

// MonthlyAggregator sums income and expense per calendar month.
type MonthlyAggregator struct {
	logger logging.Logger
}

// NewMonthlyAggregator creates a MonthlyAggregator.
func NewMonthlyAggregator(logger logging.Logger) *MonthlyAggregator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &MonthlyAggregator{logger: logger}
}

// Aggregate returns one bucket per populated month, ordered chronologically by
// the month's first day. Transactions with an unparseable date are logged and
// skipped; they never abort the pass.
func (a *MonthlyAggregator) Aggregate(transactions []models.Transaction) []models.MonthlyBucket {
	buckets := make(map[string]*models.MonthlyBucket)
	skipped := 0

	for _, t := range transactions {
		date, err := t.ParsedDate()
		if err != nil {
			skipped++
			a.logger.WithError(err).Warn("Skipping transaction with malformed date",
				logging.F(logging.FieldTransactionID, t.ID))
			continue
		}

		key := dateutils.MonthKey(date)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &models.MonthlyBucket{
				Key:     key,
				Start:   dateutils.StartOfMonth(date),
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			}
			buckets[key] = bucket
		}

		if t.IsIncome() {
			bucket.Income = bucket.Income.Add(t.Amount)
		} else {
			bucket.Expense = bucket.Expense.Add(t.Amount)
		}
		bucket.Count++
	}

	months := make([]models.MonthlyBucket, 0, len(buckets))
	for _, b := range buckets {
		months = append(months, *b)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Start.Before(months[j].Start)
	})

	a.logger.Debug("Aggregated transactions by month",
		logging.F(logging.FieldCount, len(months)),
		logging.F("skipped", skipped))

	return months
}
