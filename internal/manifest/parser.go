package manifest

import (
	"strings"

	"github.com/quantmind-br/ucmpurge/internal/domain"
)

const (
	fieldSeparator = ";"

	// headerLines is the number of leading lines that never name a document
	headerLines = 1
)

// Parse splits manifest text into raw lines, one per '\n'. A trailing
// newline yields a trailing empty line.
func Parse(text string) []string {
	return strings.Split(text, "\n")
}

// ParseEntry interprets one data line as fileName;docId[;...]
func ParseEntry(line string) (domain.ManifestEntry, error) {
	parts := strings.Split(strings.TrimSuffix(line, "\r"), fieldSeparator)
	if len(parts) < 2 {
		return domain.ManifestEntry{}, domain.ErrMalformedEntry
	}

	entry := domain.ManifestEntry{
		FileName: strings.TrimSpace(parts[0]),
		DocID:    strings.TrimSpace(parts[1]),
	}
	if entry.DocID == "" {
		return domain.ManifestEntry{}, domain.ErrMalformedEntry
	}

	return entry, nil
}

// Entries interprets every line after the header. Blank lines are skipped;
// a malformed line returns a *domain.ManifestError with its 1-based number.
func Entries(lines []string) ([]domain.ManifestEntry, error) {
	var entries []domain.ManifestEntry

	for i, line := range lines {
		if i < headerLines || strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := ParseEntry(line)
		if err != nil {
			return nil, &domain.ManifestError{Line: i + 1, Text: line, Err: err}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// BuildBatch builds the deletion batch for the manifest lines. The manifest
// document itself, identified by manifestDocID, is deleted last.
func BuildBatch(lines []string, manifestDocID string) (domain.DeletionBatch, error) {
	entries, err := Entries(lines)
	if err != nil {
		return domain.DeletionBatch{}, err
	}
	return domain.NewDeletionBatch(entries, manifestDocID), nil
}
