package broker

import (
	"strings"
	"time"

	"github.com/KAsare1/Kodefx-channels/cmd/models"
)

var csvHeader = []string{"Name", "Email", "Account Number", "Broker", "Created At"}

// EncodeCSV renders a header row plus one row per subscriber. Every field is
// double-quoted with embedded quotes doubled; rows are joined with LF.
func EncodeCSV(subscribers []models.BrokerSubscriber) string {
	lines := make([]string, 0, len(subscribers)+1)
	lines = append(lines, csvLine(csvHeader))
	for _, s := range subscribers {
		lines = append(lines, csvLine([]string{
			s.Name,
			s.Email,
			s.AccountNumber,
			s.BrokerName,
			s.CreatedAt.UTC().Format(time.RFC3339),
		}))
	}
	return strings.Join(lines, "\n")
}

func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
