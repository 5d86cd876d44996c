package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

// ParseCSVClaims reads a tabular claim file: the first row names the
// columns, every following row becomes one claim draft. Rows that cannot be
// read are skipped.
func ParseCSVClaims(raw []byte) ([]models.Claim, error) {
	records, err := readRows(raw)
	if err != nil {
		return nil, err
	}

	claims := make([]models.Claim, 0, len(records))
	for _, kv := range records {
		claims = append(claims, draftFromKV(kv, models.ChannelPaper))
	}
	return claims, nil
}

// readRows decodes header-mapped CSV rows into key/value maps.
func readRows(raw []byte) ([]map[string]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header: %v", ErrMalformedInput, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip corrupted records
		}

		kv := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				kv[column] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, kv)
	}
	return rows, nil
}
