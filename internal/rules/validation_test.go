package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

func coverageLimit(v float64) *float64 { return &v }

func newValidClaim() models.Claim {
	now := time.Now().UTC()
	return models.Claim{
		ID:         "CLM-1",
		ClaimantID: "P-1001",
		PolicyID:   "POL-7788",
		Incident: models.Incident{
			Date: "2024-03-10",
			Type: "AutoCollision",
			Location: models.Location{
				City: "Springfield", State: "IL", Country: "US",
			},
		},
		Amount:      500,
		Attachments: []string{},
		Channel:     models.ChannelPortal,
		Status:      models.StatusSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func newActivePolicy() *models.Policy {
	return &models.Policy{
		ID:            "POL-7788",
		PersonID:      "P-1001",
		Deductible:    100,
		CoverageLimit: coverageLimit(5000),
		Active:        true,
		StartDate:     "2020-01-01",
		EndDate:       "2030-12-31",
	}
}

func issueCodes(issues []models.ValidationIssue) []string {
	codes := make([]string, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return codes
}

func TestValidate(t *testing.T) {
	person := &models.Person{ID: "P-1001"}

	t.Run("should produce no issues for a fully valid claim", func(t *testing.T) {
		claim := newValidClaim()

		issues := Validate(claim, person, newActivePolicy(), []models.Claim{claim})

		assert.Empty(t, issues)
	})

	t.Run("should flag every missing reference as an error", func(t *testing.T) {
		claim := newValidClaim()
		claim.ID = ""
		claim.ClaimantID = ""
		claim.PolicyID = ""
		claim.Incident = models.Incident{}
		claim.Amount = 0

		issues := Validate(claim, person, nil, nil)

		assert.Equal(t, []string{
			"MISSING_ID",
			"MISSING_CLAIMANT",
			"MISSING_POLICY",
			"MISSING_INCIDENT",
			"INVALID_AMOUNT",
			"POLICY_INACTIVE",
		}, issueCodes(issues))
		for _, issue := range issues {
			assert.Equal(t, models.SeverityError, issue.Severity)
		}
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		claim := newValidClaim()
		claim.Amount = -10

		issues := Validate(claim, person, newActivePolicy(), nil)

		assert.Equal(t, []string{"INVALID_AMOUNT"}, issueCodes(issues))
	})

	t.Run("should flag an inactive policy", func(t *testing.T) {
		claim := newValidClaim()
		policy := newActivePolicy()
		policy.Active = false

		issues := Validate(claim, person, policy, nil)

		assert.Equal(t, []string{"POLICY_INACTIVE"}, issueCodes(issues))
	})

	t.Run("should flag an incident outside the coverage window", func(t *testing.T) {
		claim := newValidClaim()
		claim.Incident.Date = "2019-12-31"

		issues := Validate(claim, person, newActivePolicy(), nil)

		assert.Equal(t, []string{"OUT_OF_COVERAGE_PERIOD"}, issueCodes(issues))
	})

	t.Run("should accept incidents on the window bounds", func(t *testing.T) {
		for _, date := range []string{"2020-01-01", "2030-12-31"} {
			claim := newValidClaim()
			claim.Incident.Date = date

			issues := Validate(claim, person, newActivePolicy(), nil)

			assert.Empty(t, issues, "date %s should be inside the inclusive window", date)
		}
	})

	t.Run("should flag an amount over the coverage limit", func(t *testing.T) {
		claim := newValidClaim()
		claim.Amount = 5001

		issues := Validate(claim, person, newActivePolicy(), nil)

		assert.Equal(t, []string{"OVER_LIMIT"}, issueCodes(issues))
	})

	t.Run("should skip the window check when the incident date is unparsable", func(t *testing.T) {
		claim := newValidClaim()
		claim.Incident.Date = "sometime last week"

		issues := Validate(claim, person, newActivePolicy(), nil)

		assert.Empty(t, issues)
	})

	t.Run("should warn about a potential duplicate within 30 days", func(t *testing.T) {
		claim := newValidClaim()
		dup := newValidClaim()
		dup.ID = "CLM-2"
		dup.Incident.Date = "2024-03-25"

		issues := Validate(claim, person, newActivePolicy(), []models.Claim{claim, dup})

		assert.Equal(t, []string{"POTENTIAL_DUPLICATE"}, issueCodes(issues))
		assert.Equal(t, models.SeverityWarning, issues[0].Severity)
		assert.Contains(t, issues[0].Message, "CLM-2")
	})

	t.Run("should not flag a similar claim outside the 30 day window", func(t *testing.T) {
		claim := newValidClaim()
		other := newValidClaim()
		other.ID = "CLM-2"
		other.Incident.Date = "2024-05-20"

		issues := Validate(claim, person, newActivePolicy(), []models.Claim{claim, other})

		assert.Empty(t, issues)
	})

	t.Run("should never flag the claim itself as its own duplicate", func(t *testing.T) {
		claim := newValidClaim()

		issues := Validate(claim, person, newActivePolicy(), []models.Claim{claim})

		assert.Empty(t, issues)
	})
}
