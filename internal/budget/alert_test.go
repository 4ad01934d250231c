package budget

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifyAlert(t *testing.T) {
	tests := []struct {
		name      string
		expense   float64
		amount    float64
		threshold float64
		wantKind  AlertKind
		wantNil   bool
	}{
		{name: "well under", expense: 100, amount: 1000, threshold: 0.8, wantNil: true},
		{name: "just under threshold", expense: 799, amount: 1000, threshold: 0.8, wantNil: true},
		{name: "at threshold", expense: 800, amount: 1000, threshold: 0.8, wantKind: AlertWarning},
		{name: "near limit", expense: 999.99, amount: 1000, threshold: 0.8, wantKind: AlertWarning},
		{name: "at limit", expense: 1000, amount: 1000, threshold: 0.8, wantKind: AlertExceeded},
		{name: "over limit", expense: 1500, amount: 1000, threshold: 0.8, wantKind: AlertExceeded},
		{name: "custom threshold", expense: 500, amount: 1000, threshold: 0.5, wantKind: AlertWarning},
		{name: "zero budget", expense: 5000, amount: 0, threshold: 0.8, wantNil: true},
		{name: "negative budget", expense: 5000, amount: -10, threshold: 0.8, wantNil: true},
		{name: "no spending", expense: 0, amount: 1000, threshold: 0.8, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert := ClassifyAlert(decimal.NewFromFloat(tt.expense), decimal.NewFromFloat(tt.amount), tt.threshold)
			if tt.wantNil {
				assert.Nil(t, alert)
				return
			}
			if assert.NotNil(t, alert) {
				assert.Equal(t, tt.wantKind, alert.Kind)
				want := decimal.NewFromFloat(tt.expense).Div(decimal.NewFromFloat(tt.amount))
				assert.True(t, want.Equal(alert.Ratio), "ratio %s", alert.Ratio)
			}
		})
	}
}
