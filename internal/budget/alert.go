package budget

import "github.com/shopspring/decimal"

// AlertKind classifies how close spending is to a budget.
type AlertKind string

const (
	// AlertWarning means spending reached the threshold but not the budget.
	AlertWarning AlertKind = "warning"
	// AlertExceeded means spending reached or passed the budget.
	AlertExceeded AlertKind = "exceeded"
)

// Alert is raised when spending crosses the alert threshold.
type Alert struct {
	Kind  AlertKind
	Ratio decimal.Decimal
}

// ClassifyAlert applies the alert rule to an expense total measured against a
// budget amount. It returns nil for non-positive budget amounts and for ratios
// below threshold.
func ClassifyAlert(expense, amount decimal.Decimal, threshold float64) *Alert {
	if !amount.IsPositive() {
		return nil
	}

	ratio := expense.Div(amount)
	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return &Alert{Kind: AlertExceeded, Ratio: ratio}
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(threshold)):
		return &Alert{Kind: AlertWarning, Ratio: ratio}
	default:
		return nil
	}
}

// State is the budget status shown to the user.
type State string

// Budget states.
const (
	StateNone     State = "none"
	StateNormal   State = "normal"
	StateNear     State = "near"
	StateExceeded State = "exceeded"
)

func stateFor(alert *Alert) State {
	if alert == nil {
		return StateNormal
	}
	if alert.Kind == AlertExceeded {
		return StateExceeded
	}
	return StateNear
}
