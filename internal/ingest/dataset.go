package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

const datasetCoverageLimit = 50000.0

// ParseInsuranceDataset imports the bulk auto-insurance dataset format. Each
// row becomes a claim; policies referenced by rows are synthesized once per
// policy number (id POL-<number>) with dataset-wide defaults.
func ParseInsuranceDataset(raw []byte) (*Batch, error) {
	rows, err := readRows(raw)
	if err != nil {
		return nil, err
	}

	batch := &Batch{}
	seenPolicies := make(map[string]bool)
	now := time.Now().UTC()

	for _, r := range rows {
		policyNumber := strings.TrimSpace(r["policy_number"])
		policyID := ""
		if policyNumber != "" {
			policyID = "POL-" + policyNumber
		}

		if policyID != "" && !seenPolicies[policyID] {
			seenPolicies[policyID] = true
			deductible, err := strconv.ParseFloat(r["policy_deductable"], 64)
			if err != nil || deductible == 0 {
				deductible = 500
			}
			limit := datasetCoverageLimit
			batch.Policies = append(batch.Policies, models.Policy{
				ID:            policyID,
				PolicyNumber:  policyNumber,
				Product:       "Auto",
				Deductible:    deductible,
				CoverageLimit: &limit,
				Active:        true,
				StartDate:     "2010-01-01",
				EndDate:       "2030-12-31",
			})
		}

		state := strings.TrimSpace(r["incident_state"])
		if state == "" {
			state = strings.TrimSpace(r["policy_state"])
		}

		incidentType := r["incident_type"]
		if incidentType == "" {
			incidentType = "AutoCollision"
		}

		amount, err := strconv.ParseFloat(r["total_claim_amount"], 64)
		if err != nil {
			amount = 0
		}

		batch.Claims = append(batch.Claims, models.Claim{
			ID:       fmt.Sprintf("CLM-IM-%d-%d", now.UnixMilli(), len(batch.Claims)+1),
			PolicyID: policyID,
			Incident: models.Incident{
				Date:        datasetDateToISO(r["incident_date"]),
				Type:        incidentType,
				Description: datasetDescription(r),
				Location: models.Location{
					City:    strings.TrimSpace(r["incident_city"]),
					State:   state,
					Country: "US",
				},
			},
			Amount:      amount,
			Attachments: []string{},
			Channel:     models.ChannelImport,
			Status:      models.StatusSubmitted,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return batch, nil
}

// datasetDateToISO converts the dataset's day-month-year "-" dates to
// ISO yyyy-mm-dd. Anything else comes back empty and fails validation.
func datasetDateToISO(raw string) string {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", parts[2], pad2(parts[1]), pad2(parts[0]))
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// datasetDescription synthesizes a description from the informative row
// fields, skipping the dataset's "?" placeholders.
func datasetDescription(r map[string]string) string {
	var parts []string
	if v := r["collision_type"]; v != "" && v != "?" {
		parts = append(parts, "Collision: "+v)
	}
	if v := r["incident_severity"]; v != "" && v != "?" {
		parts = append(parts, "Severity: "+v)
	}
	if v := r["authorities_contacted"]; v != "" && v != "?" {
		parts = append(parts, "Authorities: "+v)
	}
	return strings.Join(parts, " · ")
}
