// Package export serializes result subsets into downloadable artifacts.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"ekoshield/internal/results"
)

// Filename builds the dated download name for an export artifact.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("eko_shield_results_%s.%s", now.Format("2006-01-02"), ext)
}

// WriteJSON emits a full-fidelity serialization of the selected results.
// Timestamps serialize as RFC 3339, so a parsed-back export compares
// field-for-field with the original records.
func WriteJSON(w io.Writer, records []results.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}
