package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/manav1309/manavinverse-create-verse/internal/domain"
)

var exportHeaders = []string{"Name", "Email", "Phone", "Message", "Submitted Date", "Google Sheets Synced"}

// WriteSubmissionsCSV writes the admin export in the review-sheet column
// order. encoding/csv handles quoting of embedded commas and quotes.
func WriteSubmissionsCSV(w io.Writer, subs []domain.ContactSubmission) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, sub := range subs {
		phone := ""
		if sub.Phone != nil {
			phone = *sub.Phone
		}
		synced := "No"
		if sub.GoogleSheetsSynced {
			synced = "Yes"
		}
		row := []string{
			sub.Name,
			sub.Email,
			phone,
			sub.Message,
			sub.SubmittedAt.UTC().Format(time.RFC3339),
			synced,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteSubmissionsJSON(w io.Writer, subs []domain.ContactSubmission) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(subs)
}

// ExportFilename builds "<base>-<YYYY-MM-DD>.<ext>" for download headers and
// the export CLI.
func ExportFilename(base, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", base, now.UTC().Format("2006-01-02"), ext)
}
