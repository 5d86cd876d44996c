// Package rules holds the pure decisioning functions: validation, fraud
// scoring and the status decision. All three are total and deterministic
// over partially-missing input, so they never return errors.
package rules

import (
	"fmt"
	"time"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

const duplicateWindow = 30 * 24 * time.Hour

// Validate runs the ordered rule list over a claim and its related records.
// The order is user-facing: issues come back in the order the checks run.
func Validate(claim models.Claim, person *models.Person, policy *models.Policy, history []models.Claim) []models.ValidationIssue {
	var issues []models.ValidationIssue

	add := func(code string, severity models.Severity, message string) {
		issues = append(issues, models.ValidationIssue{Code: code, Severity: severity, Message: message})
	}

	if claim.ID == "" {
		add("MISSING_ID", models.SeverityError, "Claim ID is missing")
	}
	if claim.ClaimantID == "" {
		add("MISSING_CLAIMANT", models.SeverityError, "Claimant missing")
	}
	if claim.PolicyID == "" {
		add("MISSING_POLICY", models.SeverityError, "Policy missing")
	}
	if claim.Incident.Date == "" || claim.Incident.Type == "" {
		add("MISSING_INCIDENT", models.SeverityError, "Incident details incomplete")
	}
	if !claim.HasValidAmount() {
		add("INVALID_AMOUNT", models.SeverityError, "Claim amount must be positive number")
	}

	if policy == nil || !policy.Active {
		add("POLICY_INACTIVE", models.SeverityError, "Policy inactive or not found")
	}

	if policy != nil {
		incidentDate, okIncident := parseDate(claim.Incident.Date)
		start, okStart := parseDate(policy.StartDate)
		end, okEnd := parseDate(policy.EndDate)
		// the coverage window is inclusive of both bounds
		if okIncident && okStart && okEnd && (incidentDate.Before(start) || incidentDate.After(end)) {
			add("OUT_OF_COVERAGE_PERIOD", models.SeverityError, "Incident outside policy coverage period")
		}

		if policy.CoverageLimit != nil && claim.Amount > *policy.CoverageLimit {
			add("OVER_LIMIT", models.SeverityError, "Requested amount exceeds policy limit")
		}
	}

	if dup := findDuplicate(claim, history); dup != nil {
		add("POTENTIAL_DUPLICATE", models.SeverityWarning, fmt.Sprintf("Similar claim detected: %s", dup.ID))
	}

	return issues
}

// findDuplicate returns the first other claim by the same claimant on the
// same policy with the same incident type within a 30-day window.
func findDuplicate(claim models.Claim, history []models.Claim) *models.Claim {
	claimDate, ok := parseDate(claim.Incident.Date)
	if !ok {
		return nil
	}

	for i, other := range history {
		if other.ID == claim.ID ||
			other.ClaimantID != claim.ClaimantID ||
			other.PolicyID != claim.PolicyID ||
			other.Incident.Type != claim.Incident.Type {
			continue
		}
		otherDate, ok := parseDate(other.Incident.Date)
		if !ok {
			continue
		}
		if absDuration(claimDate.Sub(otherDate)) <= duplicateWindow {
			return &history[i]
		}
	}
	return nil
}

// parseDate accepts the ISO date forms the adapters produce.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
