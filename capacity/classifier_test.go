package capacity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/capacity-engine/capacity"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		utilization float64
		allocation  float64
		want        capacity.Status
	}{
		{"over-utilized", 150, 100, capacity.StatusOverloaded},
		{"over-allocated plan", 80, 110, capacity.StatusOverloaded},
		{"healthy band", 90, 100, capacity.StatusOptimal},
		{"low utilization", 40, 100, capacity.StatusUnderloaded},
		{"low allocation", 90, 40, capacity.StatusUnderloaded},
		{"exactly 100 utilization is overloaded", 100, 80, capacity.StatusOverloaded},
		{"boundary 50 is optimal", 50, 50, capacity.StatusOptimal},
		{"just under 50 utilization", 49.9, 100, capacity.StatusUnderloaded},
		{"just over 100 utilization", 100.1, 100, capacity.StatusOverloaded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capacity.Classify(
				decimal.NewFromFloat(tt.utilization),
				decimal.NewFromFloat(tt.allocation),
			)
			if got != tt.want {
				t.Errorf("Classify(%v, %v) = %s, want %s",
					tt.utilization, tt.allocation, got, tt.want)
			}
		})
	}
}

// The overloaded rule is evaluated before the at-risk rule, so 100/100
// classifies as overloaded even though it also sits in the 100-120
// at-risk band. This pins the rule order; changing it is a product
// decision, not a refactor.
func TestClassify_RuleOrderAtFullUtilization(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	if got := capacity.Classify(hundred, hundred); got != capacity.StatusOverloaded {
		t.Errorf("Classify(100, 100) = %s, want %s", got, capacity.StatusOverloaded)
	}
}
