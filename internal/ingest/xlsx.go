package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
)

// ParseXLSXClaims reads claim drafts from the first sheet of a workbook.
// Row one is the header; the column mapping is the same as the CSV adapter.
func ParseXLSXClaims(raw []byte) ([]models.Claim, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %v", ErrMalformedInput, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedInput)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read sheet %s: %v", ErrMalformedInput, sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	claims := make([]models.Claim, 0, len(rows)-1)
	for _, row := range rows[1:] {
		kv := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(row) {
				kv[column] = strings.TrimSpace(row[i])
			}
		}
		claims = append(claims, draftFromKV(kv, models.ChannelPaper))
	}
	return claims, nil
}
