package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

// ParseJSONClaim handles structured submissions that are already
// claim-shaped. The payload's own field values pass through; the adapter
// mints an id if absent, forces the status back to submitted and stamps
// timestamps.
func ParseJSONClaim(raw []byte) (models.Claim, error) {
	var claim models.Claim
	if err := json.Unmarshal(raw, &claim); err != nil {
		return models.Claim{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	now := time.Now().UTC()
	if claim.ID == "" {
		claim.ID = NewClaimID()
	}
	if claim.Channel == "" {
		claim.Channel = models.ChannelPortal
	}
	if claim.Attachments == nil {
		claim.Attachments = []string{}
	}
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = now
	}
	claim.Status = models.StatusSubmitted
	claim.UpdatedAt = now

	return claim, nil
}
