package export_test

import (
	"bytes"
	"testing"

	"fjacquet/finsight/cmd/export"
	"fjacquet/finsight/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	txs := []models.Transaction{{
		ID: "t1", UserID: "u1", Type: models.TypeExpense,
		Amount: decimal.RequireFromString("12.5"), Category: "Food", Date: "2024-02-01",
	}}

	tests := []struct {
		format   string
		contains []string
		wantErr  bool
	}{
		{format: "csv", contains: []string{"ID,UserID,Type,Amount,Category,Description,Date", "t1,u1,expense,12.5,Food,,2024-02-01"}},
		{format: "YAML", contains: []string{"- id: t1", "  category: Food", "  amount: ", "12.5"}},
		{format: "xlsx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := export.Write(&buf, tt.format, txs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
