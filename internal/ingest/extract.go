package ingest

import (
	"regexp"
	"strings"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

// fieldLine matches one "key: value" or "key - value" line of text pulled
// out of a scanned document. Keys are matched case-insensitively against the
// fixed set of recognized field names.
var fieldLine = regexp.MustCompile(`(?i)^(id|claimantId|policyId|incidentDate|incidentType|amount|description|city|state|country)\s*[:\-]\s*(.+)$`)

var canonicalKeys = map[string]string{
	"id":           "id",
	"claimantid":   "claimantId",
	"policyid":     "policyId",
	"incidentdate": "incidentDate",
	"incidenttype": "incidentType",
	"amount":       "amount",
	"description":  "description",
	"city":         "city",
	"state":        "state",
	"country":      "country",
}

// ParseExtractedText recovers a claim draft from free text extracted out of
// a scanned document, line by line. Lines that match no recognized field are
// ignored.
func ParseExtractedText(raw []byte) models.Claim {
	kv := make(map[string]string)
	for _, line := range strings.Split(string(raw), "\n") {
		m := fieldLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		kv[canonicalKeys[strings.ToLower(m[1])]] = strings.TrimSpace(m[2])
	}

	return draftFromKV(kv, models.ChannelPaper)
}
