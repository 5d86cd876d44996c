package ingest

import (
	"strings"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

// ParseTextClaim reads a plain-text paper form of "key: value" lines.
// Unrecognized lines are ignored; values may themselves contain colons.
func ParseTextClaim(raw []byte) models.Claim {
	kv := make(map[string]string)
	for _, line := range strings.Split(string(raw), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(key) == "" {
			continue
		}
		kv[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return draftFromKV(kv, models.ChannelPaper)
}
