package models

// FinancialMetrics is the derived, read-only snapshot computed from a
// validated UserProfile. It is recomputed on every request and never
// cached across profiles.
type FinancialMetrics struct {
	GrossMonthlyIncome  float64 `json:"gross_monthly_income"`
	InvestmentCapacity  float64 `json:"investment_capacity"` // monthly, floored at zero
	DebtToIncome        float64 `json:"debt_to_income"`      // fraction
	HighDebtLoad        bool    `json:"high_debt_load"`      // DTI above 0.43
	SavingsRate         float64 `json:"savings_rate"`        // fraction, zero when income is zero
	RiskScore           float64 `json:"risk_score"`          // normalized 0-100
	EmergencyFundMonths float64 `json:"emergency_fund_months"`
	EmergencyFundTarget float64 `json:"emergency_fund_target"`
	EmergencyFundGap    float64 `json:"emergency_fund_gap"`
}
