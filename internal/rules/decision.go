package rules

import (
	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

const autoApproveAmount = 1000

// Decide turns validation and fraud results into a final status and payout.
// Any error-severity issue rejects regardless of fraud score (fail closed);
// a rejected claim always pays out zero.
func Decide(validation []models.ValidationIssue, fraud models.FraudAssessment, claim models.Claim, policy *models.Policy) models.Decision {
	if models.HasErrors(validation) {
		return models.Decision{Status: models.StatusRejected, Reason: "Validation errors", Payout: 0}
	}

	deductible := 0.0
	if policy != nil {
		deductible = policy.Deductible
	}
	base := claim.Amount - deductible
	if base < 0 {
		base = 0
	}
	payout := base
	if policy != nil && policy.CoverageLimit != nil && payout > *policy.CoverageLimit {
		payout = *policy.CoverageLimit
	}

	if fraud.Risk == models.RiskLow && claim.Amount <= autoApproveAmount {
		return models.Decision{Status: models.StatusSettled, Reason: "Auto-approved: low risk, low amount", Payout: payout}
	}

	if fraud.Risk == models.RiskHigh {
		return models.Decision{Status: models.StatusRejected, Reason: "High fraud risk", Payout: 0}
	}

	return models.Decision{Status: models.StatusProcessing, Reason: "Queued for adjuster review", Payout: payout}
}
