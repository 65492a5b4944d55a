package insights_test

import (
	"bytes"
	"testing"

	cmdinsights "fjacquet/finsight/cmd/insights"
	"fjacquet/finsight/internal/insights"
	"fjacquet/finsight/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightsCommand_Metadata(t *testing.T) {
	assert.Equal(t, "insights", cmdinsights.Cmd.Use)
	assert.NotNil(t, cmdinsights.Cmd.RunE)

	formatFlag := cmdinsights.Cmd.Flags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "f", formatFlag.Shorthand)
	assert.Equal(t, "text", formatFlag.DefValue)

	inputFlag := cmdinsights.Cmd.Flags().Lookup("input")
	require.NotNil(t, inputFlag)
	assert.Equal(t, "i", inputFlag.Shorthand)
}

func TestWriteText(t *testing.T) {
	score := 80
	tests := []struct {
		name     string
		report   insights.Report
		contains []string
	}{
		{
			name:     "no data",
			report:   insights.Report{},
			contains: []string{"Not enough transactions"},
		},
		{
			name: "full report",
			report: insights.Report{
				HasData:     true,
				HealthScore: &score,
				Totals: models.Totals{
					Income:  decimal.NewFromInt(1000),
					Expense: decimal.NewFromInt(250),
					Balance: decimal.NewFromInt(750),
				},
				Months: []models.MonthlyBucket{{Key: "March 2024", Income: decimal.NewFromInt(1000), Expense: decimal.NewFromInt(250)}},
				Insights: []models.Insight{{
					Kind: models.KindSavingsSuccess, Title: "Great Savings!", Message: "Keep it up",
					Severity: models.SeverityInfo, Action: "Consider investing",
				}},
			},
			contains: []string{"Income:   €1000.00", "Health score: 80/100", "March 2024", "[info] Great Savings!: Keep it up", "Consider investing"},
		},
		{
			name:     "no insights",
			report:   insights.Report{HasData: true, Insights: []models.Insight{}},
			contains: []string{"No insights right now."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, cmdinsights.WriteText(&buf, tt.report, "€"))
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
