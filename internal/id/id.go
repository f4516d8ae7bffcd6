// Package id formats and parses journal entry identifiers.
//
// An entry ID is "YYYY-MM-NNN" (year, month, sequence within the month).
// A line ID appends a lowercase letter per posting: "2025-01-001a".
package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatEntryID returns an entry ID like "2025-01-001".
func FormatEntryID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// FormatLineID returns a line ID like "2025-01-001a" (line 0='a', 1='b', etc.).
func FormatLineID(entryID string, line int) string {
	return entryID + string(rune('a'+line))
}

// ParseEntryID parses "2025-01-001" (or a line ID) into year, month, seq.
func ParseEntryID(s string) (year, month, seq int, err error) {
	parts := strings.SplitN(EntryGroup(s), "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid entry ID format: %q", s)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in entry ID %q: %w", s, err)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in entry ID %q: %w", s, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month out of range in entry ID %q", s)
	}
	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in entry ID %q: %w", s, err)
	}
	return year, month, seq, nil
}

// EntryGroup strips the line suffix from a line ID.
// "2025-01-001a" -> "2025-01-001"
func EntryGroup(lineID string) string {
	i := len(lineID)
	for i > 0 && lineID[i-1] >= 'a' && lineID[i-1] <= 'z' {
		i--
	}
	return lineID[:i]
}
