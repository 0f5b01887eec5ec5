package subscription

import "time"

type PlanType string

const (
	MonthlyPlan   PlanType = "monthly"
	QuarterlyPlan PlanType = "quarterly"
	YearlyPlan    PlanType = "yearly"
)

type PlanDetails struct {
	Name   string  `json:"name"`
	Months int     `json:"months"`
	Price  float64 `json:"price"`
}

var Plans = map[PlanType]PlanDetails{
	MonthlyPlan:   {Name: "Monthly", Months: 1, Price: 9.99},
	QuarterlyPlan: {Name: "Quarterly", Months: 3, Price: 24.99},
	YearlyPlan:    {Name: "Yearly", Months: 12, Price: 89.99},
}

func ValidPlan(plan PlanType) bool {
	_, ok := Plans[plan]
	return ok
}

// PeriodEnd computes the end of a billing period that starts at from:
// one calendar month for monthly, three for quarterly, one year for yearly.
func PeriodEnd(plan PlanType, from time.Time) time.Time {
	switch plan {
	case QuarterlyPlan:
		return from.AddDate(0, 3, 0)
	case YearlyPlan:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}
