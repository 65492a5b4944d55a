package insights

import (
	"fmt"

	"fjacquet/finsight/internal/aggregator"
	"fjacquet/finsight/internal/models"

	"github.com/shopspring/decimal"
)

var seq int

func expense(amount, category, date string) models.Transaction {
	return newTx(models.TypeExpense, amount, category, "", date)
}

func income(amount, category, date string) models.Transaction {
	return newTx(models.TypeIncome, amount, category, "", date)
}

func newTx(typ models.TransactionType, amount, category, description, date string) models.Transaction {
	seq++
	return models.Transaction{
		ID:          fmt.Sprintf("tx-%d", seq),
		UserID:      "user-1",
		Type:        typ,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: description,
		Date:        date,
	}
}

func inputFor(txs ...models.Transaction) Input {
	return Input{
		Transactions: txs,
		Months:       aggregator.NewMonthlyAggregator(nil).Aggregate(txs),
		Profile:      models.UserProfile{UserID: "user-1"},
	}
}

func kinds(insights []models.Insight) []models.InsightKind {
	out := make([]models.InsightKind, len(insights))
	for i, in := range insights {
		out[i] = in.Kind
	}
	return out
}
