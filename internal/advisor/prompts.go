package advisor

import (
	"fmt"
	"strings"
)

// systemPrompt frames the completion service as a portfolio advisor and
// pins down the output contract. The response is still treated as
// untrusted input and fully validated downstream.
const systemPrompt = `You are an expert financial advisor AI. Your job is to give clear, actionable, and responsible portfolio diversification advice.
- Never recommend individual stocks or trading strategies.
- Focus on asset class allocation, risk management, and goal-based planning.
- Always explain reasoning in simple, educational terms.
- Use only the information provided by the user.`

const investingRules = `Essential rules to apply:
1. Rule of 100: subtract age from 100 to estimate the equity share; the rest in bonds/fixed income.
2. Keep 3-6 months of expenses as an emergency fund before investing.
3. Diversify across asset classes.
4. Align the portfolio with the stated risk tolerance.
5. Invest conservatively for short horizons; take more risk for long ones.`

const responseContract = `Respond strictly with a JSON object of the form:
{"allocations": {"equities": number, "bonds": number, "real_estate": number, "cash_equivalents": number, "alternatives": number}, "rationale": "short explanation"}
Weights are percentages and must cover exactly these five asset classes.`

// buildUserPrompt renders the structured payload into the completion
// request body.
func buildUserPrompt(req *AdviceRequest) string {
	var b strings.Builder

	b.WriteString("User financial snapshot:\n")
	fmt.Fprintf(&b, "- Gross monthly income: %.2f\n", req.Metrics.GrossMonthlyIncome)
	fmt.Fprintf(&b, "- Monthly investment capacity: %.2f\n", req.Metrics.InvestmentCapacity)
	fmt.Fprintf(&b, "- Savings rate: %.1f%%\n", req.Metrics.SavingsRate*100)
	fmt.Fprintf(&b, "- Debt-to-income ratio: %.2f", req.Metrics.DebtToIncome)
	if req.Metrics.HighDebtLoad {
		b.WriteString(" (high)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- Risk score: %.0f/100 (stated tolerance: %s)\n", req.Metrics.RiskScore, req.RiskTolerance)
	fmt.Fprintf(&b, "- Time horizon: %d years\n", req.TimeHorizonYears)
	fmt.Fprintf(&b, "- Emergency fund coverage: %.1f months (target %.0f)\n",
		req.Metrics.EmergencyFundMonths, emergencyFundMonths)

	if len(req.Goals) > 0 {
		b.WriteString("- Goals (by priority):\n")
		for _, g := range req.Goals {
			fmt.Fprintf(&b, "  %d. %s: %q\n", g.Priority, g.Category, g.RawText)
		}
	}

	b.WriteString("\n")
	b.WriteString(investingRules)
	b.WriteString("\n\n")
	b.WriteString(responseContract)

	return b.String()
}
