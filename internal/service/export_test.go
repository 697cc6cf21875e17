package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/manav1309/manavinverse-create-verse/internal/domain"
)

func exportFixture() []domain.ContactSubmission {
	phone := "555-1"
	return []domain.ContactSubmission{
		{
			ID:                 uuid.New(),
			Name:               `Ann "The Writer" Lee`,
			Email:              "ann@x.com",
			Phone:              &phone,
			Message:            "Hello, with a comma",
			SubmittedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			GoogleSheetsSynced: true,
		},
		{
			ID:          uuid.New(),
			Name:        "Bo",
			Email:       "bo@x.com",
			Message:     "Hey",
			SubmittedAt: time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestWriteSubmissionsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSubmissionsCSV(&buf, exportFixture()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reparse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	wantHeader := []string{"Name", "Email", "Phone", "Message", "Submitted Date", "Google Sheets Synced"}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Fatalf("header column %d: got %q want %q", i, rows[0][i], h)
		}
	}
	if rows[1][0] != `Ann "The Writer" Lee` || rows[1][3] != "Hello, with a comma" {
		t.Fatalf("expected quoting to round-trip, got %+v", rows[1])
	}
	if rows[1][5] != "Yes" || rows[2][5] != "No" {
		t.Fatalf("expected Yes/No sync column, got %q and %q", rows[1][5], rows[2][5])
	}
	if rows[2][2] != "" {
		t.Fatalf("expected empty phone column, got %q", rows[2][2])
	}
}

func TestWriteSubmissionsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSubmissionsJSON(&buf, exportFixture()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var decoded []domain.ContactSubmission
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("reparse json: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Email != "ann@x.com" {
		t.Fatalf("unexpected decoded export: %+v", decoded)
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	got := ExportFilename("contact-submissions", "csv", now)
	if got != "contact-submissions-2025-06-01.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
	if !strings.HasSuffix(ExportFilename("x", "json", now), ".json") {
		t.Fatal("expected json suffix")
	}
}
