package insights

import (
	"fmt"
	"testing"

	"fjacquet/finsight/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorySpending_Dominance(t *testing.T) {
	in := inputFor(
		expense("400", "Food", "2024-01-01"),
		expense("300", "Rent", "2024-01-02"),
		expense("300", "Other", "2024-01-03"),
	)

	got := CategorySpending(in)

	require.Len(t, got, 1)
	assert.Equal(t, models.KindCategoryDominance, got[0].Kind)
	assert.Equal(t, "Food makes up 40.0% of your expenses", got[0].Message)
	assert.Equal(t, "Food", got[0].Data["category"])
	assert.Equal(t, 40.0, got[0].Data["percentage"])
}

func TestCategorySpending_ExactlyThirtyFivePercent(t *testing.T) {
	in := inputFor(
		expense("350", "Food", "2024-01-01"),
		expense("325", "Rent", "2024-01-02"),
		expense("325", "Other", "2024-01-03"),
	)
	assert.Empty(t, CategorySpending(in))
}

func TestCategorySpending_Spread(t *testing.T) {
	var txs []models.Transaction
	for i := 0; i < 16; i++ {
		txs = append(txs, expense("10", fmt.Sprintf("Category %d", i), "2024-01-01"))
	}

	got := CategorySpending(inputFor(txs...))

	require.Len(t, got, 1)
	assert.Equal(t, models.KindCategorySpread, got[0].Kind)
	assert.Equal(t, 16, got[0].Data["categoryCount"])
}

func TestCategorySpending_IgnoresIncome(t *testing.T) {
	in := inputFor(
		income("5000", "Salary", "2024-01-01"),
		expense("10", "Food", "2024-01-01"),
		expense("10", "Rent", "2024-01-01"),
		expense("10", "Other", "2024-01-01"),
	)
	assert.Empty(t, CategorySpending(in))
}

func TestDuplicates(t *testing.T) {
	tests := []struct {
		name   string
		first  models.Transaction
		second models.Transaction
		want   int
	}{
		{
			name:   "two days apart",
			first:  expense("10.00", "Food", "2024-03-01"),
			second: expense("10.50", "Food", "2024-03-03"),
			want:   1,
		},
		{
			name:   "four days apart",
			first:  expense("10.00", "Food", "2024-03-01"),
			second: expense("10.50", "Food", "2024-03-05"),
			want:   0,
		},
		{
			name:   "order does not matter",
			first:  expense("10.50", "Food", "2024-03-03"),
			second: expense("10.00", "Food", "2024-03-01"),
			want:   1,
		},
		{
			name:   "amounts one apart",
			first:  expense("10.00", "Food", "2024-03-01"),
			second: expense("11.00", "Food", "2024-03-01"),
			want:   0,
		},
		{
			name:   "different categories",
			first:  expense("10.00", "Food", "2024-03-01"),
			second: expense("10.00", "Travel", "2024-03-01"),
			want:   0,
		},
		{
			name:   "unparseable date",
			first:  expense("10.00", "Food", "2024-03-01"),
			second: expense("10.00", "Food", "yesterday"),
			want:   0,
		},
		{
			name:   "income is not considered",
			first:  income("10.00", "Food", "2024-03-01"),
			second: expense("10.00", "Food", "2024-03-01"),
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Duplicates(Input{Transactions: []models.Transaction{tt.first, tt.second}})
			assert.Len(t, got, tt.want)
		})
	}
}

func TestDuplicates_Payload(t *testing.T) {
	a := expense("10.00", "Food", "2024-03-01")
	b := expense("10.50", "Food", "2024-03-03")

	got := Duplicates(Input{Transactions: []models.Transaction{a, b}})

	require.Len(t, got, 1)
	assert.Equal(t, "Similar Food expenses found within a few days", got[0].Message)
	first := got[0].Data["first"].(map[string]interface{})
	second := got[0].Data["second"].(map[string]interface{})
	assert.Equal(t, a.ID, first["id"])
	assert.Equal(t, "Mar 01", first["date"])
	assert.Equal(t, "Mar 03", second["date"])
}

func TestBudgetTips(t *testing.T) {
	t.Run("food spend", func(t *testing.T) {
		in := inputFor(
			expense("200", "Groceries", "2024-01-01"),
			expense("101", "Dining", "2024-01-02"),
		)
		assert.Equal(t, []models.InsightKind{models.KindBudgetTip}, kinds(BudgetTips(in)))
	})

	t.Run("food spend at limit", func(t *testing.T) {
		in := inputFor(expense("300", "Food", "2024-01-01"))
		assert.Empty(t, BudgetTips(in))
	})

	t.Run("subscriptions", func(t *testing.T) {
		in := inputFor(
			newTx(models.TypeExpense, "10", "Entertainment", "Netflix", "2024-01-01"),
			newTx(models.TypeExpense, "10", "Entertainment", "Spotify", "2024-01-01"),
			newTx(models.TypeExpense, "10", "Bills", "Amazon Prime", "2024-01-01"),
			newTx(models.TypeExpense, "10", "Subscriptions", "Gym", "2024-01-01"),
		)
		assert.Equal(t, []models.InsightKind{models.KindSubscriptionAlert}, kinds(BudgetTips(in)))
	})

	t.Run("impulse spending", func(t *testing.T) {
		in := inputFor(
			expense("150", "Shopping", "2024-01-01"),
			expense("60", "Hobby", "2024-01-02"),
		)
		got := BudgetTips(in)
		require.Len(t, got, 1)
		assert.Equal(t, models.KindImpulseSpending, got[0].Kind)
		assert.Equal(t, models.SeverityMedium, got[0].Severity)
	})
}
