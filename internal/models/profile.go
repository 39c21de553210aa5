package models

import (
	"fmt"
	"strings"
)

// RiskTolerance represents the user's stated comfort with investment risk.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// Valid reports whether the tolerance is one of the known tiers.
func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// ParseRiskTolerance converts free-form input into a RiskTolerance.
func ParseRiskTolerance(raw string) (RiskTolerance, error) {
	r := RiskTolerance(strings.ToLower(strings.TrimSpace(raw)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown risk tolerance %q", raw)
	}
	return r, nil
}

// Debt represents a single outstanding liability.
type Debt struct {
	Principal      float64 `json:"principal"`
	InterestRate   float64 `json:"interest_rate"` // annual, fraction
	MonthlyPayment float64 `json:"monthly_payment"`
}

// UserProfile is the validated, request-scoped snapshot of a user's
// self-reported financial situation. It is immutable for the duration of
// a pipeline run and never persisted.
type UserProfile struct {
	MonthlySalary       float64       `json:"monthly_salary"`
	AdditionalIncome    float64       `json:"additional_income"`
	FixedExpenses       float64       `json:"fixed_expenses"`
	VariableExpenses    float64       `json:"variable_expenses"`
	Debts               []Debt        `json:"debts,omitempty"`
	Savings             float64       `json:"savings"`
	ExistingInvestments float64       `json:"existing_investments"`
	Age                 int           `json:"age"`
	RiskTolerance       RiskTolerance `json:"risk_tolerance"`
	TimeHorizonYears    int           `json:"time_horizon_years"`
	Goals               []string      `json:"goals,omitempty"`
}

// GrossMonthlyIncome returns salary plus additional income.
func (p UserProfile) GrossMonthlyIncome() float64 {
	return p.MonthlySalary + p.AdditionalIncome
}

// TotalExpenses returns fixed plus variable monthly expenses.
func (p UserProfile) TotalExpenses() float64 {
	return p.FixedExpenses + p.VariableExpenses
}

// TotalDebtPayments returns the sum of minimum monthly debt payments.
func (p UserProfile) TotalDebtPayments() float64 {
	var total float64
	for _, d := range p.Debts {
		total += d.MonthlyPayment
	}
	return total
}

// ValidationError reports malformed profile input. It is the only failure
// a caller of the pipeline ever sees.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid user profile: %s", strings.Join(e.Problems, "; "))
}

// Validate checks the profile against the input contract. A nil return
// means the profile is safe to feed into the pipeline.
func (p UserProfile) Validate() error {
	var problems []string

	if p.MonthlySalary < 0 {
		problems = append(problems, "monthly salary cannot be negative")
	}
	if p.AdditionalIncome < 0 {
		problems = append(problems, "additional income cannot be negative")
	}
	if p.FixedExpenses < 0 {
		problems = append(problems, "fixed expenses cannot be negative")
	}
	if p.VariableExpenses < 0 {
		problems = append(problems, "variable expenses cannot be negative")
	}
	if p.Savings < 0 {
		problems = append(problems, "savings cannot be negative")
	}
	if p.ExistingInvestments < 0 {
		problems = append(problems, "existing investments cannot be negative")
	}
	for i, d := range p.Debts {
		if d.Principal < 0 || d.InterestRate < 0 || d.MonthlyPayment < 0 {
			problems = append(problems, fmt.Sprintf("debt %d contains negative values", i+1))
		}
	}
	if p.Age <= 0 {
		problems = append(problems, "age must be positive")
	}
	if !p.RiskTolerance.Valid() {
		problems = append(problems, fmt.Sprintf("risk tolerance must be one of %s, %s, %s",
			RiskConservative, RiskModerate, RiskAggressive))
	}
	if p.TimeHorizonYears <= 0 {
		problems = append(problems, "time horizon must be positive")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
