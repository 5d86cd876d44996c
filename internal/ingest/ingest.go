// Package ingest converts raw bytes of a recognized format into canonical
// claim drafts. Adapters are pure: no I/O, and malformed field values never
// fail; a missing or garbage field surfaces later as a validation issue.
// Only an unreadable container (bad JSON, bad workbook, unknown format)
// returns an ErrMalformedInput-wrapped error.
package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

// ErrMalformedInput marks byte streams that cannot be decoded at all.
var ErrMalformedInput = errors.New("malformed input")

// Format is the hint the intake surface passes alongside raw bytes.
type Format string

const (
	FormatJSON    Format = "json"
	FormatText    Format = "txt"
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatExtract Format = "extract"
	FormatDataset Format = "dataset"
)

// Batch is the output of one adapter run. Only the bulk dataset format
// produces policies.
type Batch struct {
	Claims   []models.Claim
	Policies []models.Policy
}

// Parse dispatches raw bytes to the adapter for the given format.
func Parse(raw []byte, format Format) (*Batch, error) {
	switch format {
	case FormatJSON:
		claim, err := ParseJSONClaim(raw)
		if err != nil {
			return nil, err
		}
		return &Batch{Claims: []models.Claim{claim}}, nil
	case FormatText:
		return &Batch{Claims: []models.Claim{ParseTextClaim(raw)}}, nil
	case FormatCSV:
		claims, err := ParseCSVClaims(raw)
		if err != nil {
			return nil, err
		}
		return &Batch{Claims: claims}, nil
	case FormatXLSX:
		claims, err := ParseXLSXClaims(raw)
		if err != nil {
			return nil, err
		}
		return &Batch{Claims: claims}, nil
	case FormatExtract:
		return &Batch{Claims: []models.Claim{ParseExtractedText(raw)}}, nil
	case FormatDataset:
		return ParseInsuranceDataset(raw)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrMalformedInput, format)
	}
}

// FormatForFile maps a file extension (with or without the leading dot) to
// an ingestion format. ok is false for unrecognized extensions.
func FormatForFile(ext string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return FormatJSON, true
	case "txt":
		return FormatText, true
	case "csv":
		return FormatCSV, true
	case "xlsx":
		return FormatXLSX, true
	default:
		return "", false
	}
}

// NewClaimID mints a fresh claim identifier.
func NewClaimID() string {
	return "CLM-" + uuid.NewString()
}

// draftFromKV builds a claim draft from the shared key/value field mapping
// used by the text, tabular and extracted-text adapters.
func draftFromKV(kv map[string]string, channel models.Channel) models.Claim {
	amountStr := kv["amount"]
	if amountStr == "" {
		amountStr = kv["claimAmount"]
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
	if err != nil {
		amount = 0 // left for validation to reject
	}

	country := kv["country"]
	if country == "" {
		country = "US"
	}

	now := time.Now().UTC()
	claim := models.Claim{
		ID:         kv["id"],
		ClaimantID: kv["claimantId"],
		PolicyID:   kv["policyId"],
		Incident: models.Incident{
			Date:        kv["incidentDate"],
			Type:        kv["incidentType"],
			Description: kv["description"],
			Location: models.Location{
				City:    kv["city"],
				State:   kv["state"],
				Country: country,
			},
		},
		Amount:      amount,
		Attachments: []string{},
		Channel:     channel,
		Status:      models.StatusSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if claim.ID == "" {
		claim.ID = NewClaimID()
	}
	return claim
}
