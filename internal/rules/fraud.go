package rules

import (
	"strings"
	"time"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

const (
	highAmountThreshold = 20000
	recentClaimsWindow  = 180 * 24 * time.Hour
	highRiskThreshold   = 60
	mediumRiskThreshold = 30
)

// suspiciousTerms flags wording that adjusters have learned to distrust.
var suspiciousTerms = []string{"cash", "urgent", "lost", "no receipts", "stolen yesterday", "unattended"}

// Score computes the additive fraud score for a claim against the
// claimant's full claim history (which includes the claim itself).
func Score(claim models.Claim, history []models.Claim) models.FraudAssessment {
	score := 0
	reasons := []string{}

	if claim.Amount >= highAmountThreshold {
		score += 35
		reasons = append(reasons, "High claimed amount")
	}
	if claim.Channel == models.ChannelPaper {
		score += 10
		reasons = append(reasons, "Paper-based submission")
	}
	if len(claim.Attachments) == 0 {
		score += 5
		reasons = append(reasons, "No supporting attachments")
	}

	recent := 0
	for _, other := range history {
		if other.ClaimantID != claim.ClaimantID {
			continue
		}
		if absDuration(claim.CreatedAt.Sub(other.CreatedAt)) < recentClaimsWindow {
			recent++
		}
	}
	if recent >= 3 {
		score += 25
		reasons = append(reasons, "Multiple claims in 6 months")
	}

	description := strings.ToLower(claim.Incident.Description)
	for _, term := range suspiciousTerms {
		if strings.Contains(description, term) {
			score += 10
			reasons = append(reasons, "Suspicious wording")
			break
		}
	}

	risk := models.RiskLow
	switch {
	case score >= highRiskThreshold:
		risk = models.RiskHigh
	case score >= mediumRiskThreshold:
		risk = models.RiskMedium
	}

	return models.FraudAssessment{Score: score, Risk: risk, Reasons: reasons}
}
