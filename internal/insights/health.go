package insights

import (
	"fjacquet/finsight/internal/models"

	"github.com/shopspring/decimal"
)

const healthMinTransactions = 5

var healthBands = []struct {
	below decimal.Decimal
	score int
}{
	{decimal.Zero, 20},
	{decimal.NewFromInt(10), 40},
	{decimal.NewFromInt(20), 60},
	{decimal.NewFromInt(30), 80},
}

// HealthScore maps the savings rate onto a 0-100 score. The boolean is false
// when fewer than five transactions exist and no score can be given. A user
// with no income scores 0.
func HealthScore(transactions []models.Transaction) (int, bool) {
	if len(transactions) < healthMinTransactions {
		return 0, false
	}
	rate, ok := SavingsRate(transactions)
	if !ok {
		return 0, true
	}
	for _, band := range healthBands {
		if rate.LessThan(band.below) {
			return band.score, true
		}
	}
	return 100, true
}
