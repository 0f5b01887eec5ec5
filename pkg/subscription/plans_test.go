package subscription

import (
	"testing"
	"time"
)

func TestPeriodEnd(t *testing.T) {
	start := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		plan PlanType
		want time.Time
	}{
		{
			name: "monthly adds one calendar month",
			plan: MonthlyPlan,
			want: time.Date(2025, time.April, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "quarterly adds three months",
			plan: QuarterlyPlan,
			want: time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "yearly adds one year",
			plan: YearlyPlan,
			want: time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeriodEnd(tt.plan, start)
			if !got.Equal(tt.want) {
				t.Errorf("PeriodEnd(%s) = %v, want %v", tt.plan, got, tt.want)
			}
		})
	}
}

func TestValidPlan(t *testing.T) {
	for _, plan := range []PlanType{MonthlyPlan, QuarterlyPlan, YearlyPlan} {
		if !ValidPlan(plan) {
			t.Errorf("ValidPlan(%s) = false, want true", plan)
		}
	}

	for _, plan := range []PlanType{"weekly", "", "MONTHLY"} {
		if ValidPlan(plan) {
			t.Errorf("ValidPlan(%q) = true, want false", plan)
		}
	}
}
