package feedback

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"feedbackclassifier/internal/domain"
)

func TestLoadSampleFile(t *testing.T) {
	table, err := Load(filepath.Join("..", "..", "testdata", "feedback.csv"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(table.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(table.Records))
	}
	if table.FeedbackIndex != 1 {
		t.Fatalf("expected Feedback at index 1, got %d", table.FeedbackIndex)
	}
	texts := table.Texts()
	if texts[1] != "Broken AC in hostel" {
		t.Fatalf("unexpected second text: %q", texts[1])
	}
	if table.Records[2].Row != 3 {
		t.Fatalf("expected row numbers to be 1-based, got %d", table.Records[2].Row)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, domain.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}

func TestReadMissingFeedbackColumn(t *testing.T) {
	_, err := Read(strings.NewReader("Comment,Student\nhello,S1\n"))
	if !errors.Is(err, domain.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestReadColumnNameIsCaseSensitive(t *testing.T) {
	_, err := Read(strings.NewReader("feedback\nhello\n"))
	if !errors.Is(err, domain.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn for lowercase header, got %v", err)
	}
}

func TestReadParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "row wider than header", input: "Feedback,Student\nhello,S1,extra\n"},
		{name: "bare quote", input: "Feedback\n\"unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if !errors.Is(err, domain.ErrInputParse) {
				t.Fatalf("expected ErrInputParse, got %v", err)
			}
		})
	}
}

func TestReadStripsBOMAndKeepsEmptyText(t *testing.T) {
	table, err := Read(strings.NewReader("\ufeffFeedback,Student\n,S1\n\"multi\nline\",S2\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if table.FeedbackIndex != 0 {
		t.Fatalf("expected BOM stripped header, got %q", table.Header[0])
	}
	texts := table.Texts()
	if texts[0] != "" || texts[1] != "multi\nline" {
		t.Fatalf("unexpected texts: %q", texts)
	}
}

func TestLoadUnreadablePathIsParseError(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := Load(filepath.Join(dir, "sub.csv"))
	if err == nil || errors.Is(err, domain.ErrInputNotFound) {
		t.Fatalf("expected a non-not-found error for a directory, got %v", err)
	}
}

func TestReadPadsShortRows(t *testing.T) {
	table, err := Read(strings.NewReader("Id,Feedback,Year\n1,Great professors\n2\n3,Broken AC,3\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(table.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(table.Records))
	}
	for i, rec := range table.Records {
		if len(rec.Values) != len(table.Header) {
			t.Fatalf("record %d: expected %d values, got %v", i, len(table.Header), rec.Values)
		}
	}
	texts := table.Texts()
	if texts[0] != "Great professors" || texts[1] != "" || texts[2] != "Broken AC" {
		t.Fatalf("unexpected texts: %q", texts)
	}
	if table.Records[0].Values[2] != "" {
		t.Fatalf("missing trailing cell should be empty, got %q", table.Records[0].Values[2])
	}
}
