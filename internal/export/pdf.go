package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"ekoshield/internal/results"
)

const (
	pageBottomMargin = 60.0
	textWidth        = 160.0
)

// WritePDF renders the paginated report: a header, then one block per
// result showing inputs, the verification outcome, and any error text.
// Purely presentational; nothing it renders is validated.
func WritePDF(w io.Writer, records []results.Result, now time.Time) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	_, pageHeight := doc.GetPageSize()

	doc.SetFont("Helvetica", "B", 18)
	doc.Text(20, 20, "Eko Shield - Verification Results Report")

	doc.SetFont("Helvetica", "", 12)
	doc.Text(20, 35, fmt.Sprintf("Generated on: %s", now.Format("2006-01-02 15:04:05")))
	doc.Text(20, 45, fmt.Sprintf("Total Results: %d", len(records)))

	y := 65.0
	for i, r := range records {
		if y > pageHeight-pageBottomMargin {
			doc.AddPage()
			y = 20
		}

		doc.SetFont("Helvetica", "B", 14)
		doc.Text(20, y, fmt.Sprintf("%d. %s", i+1, r.Service))
		y += 8

		doc.SetFont("Helvetica", "", 10)
		y = line(doc, y, fmt.Sprintf("Category: %s", r.Category))
		y = line(doc, y, fmt.Sprintf("Status: %s", r.Status))
		y = line(doc, y, fmt.Sprintf("Timestamp: %s", r.Timestamp.Format("2006-01-02 15:04:05")))

		if len(r.InputData) > 0 {
			y = line(doc, y, "Input Data:")
			for _, field := range sortedKeys(r.InputData) {
				y = wrapped(doc, y, fmt.Sprintf("  %s: %s", field, r.InputData[field]))
			}
		}

		if r.Response != nil {
			y = line(doc, y, "Response:")
			if r.Response.Verified != nil {
				y = line(doc, y, fmt.Sprintf("  Verified: %s", yesNo(*r.Response.Verified)))
			}
			if r.Response.Confidence != nil {
				y = line(doc, y, fmt.Sprintf("  Confidence: %.0f%%", *r.Response.Confidence))
			}
			if r.Response.Details != nil {
				y = wrapped(doc, y, fmt.Sprintf("  Details: %s", detailText(r.Response.Details)))
			}
		}

		if r.Error != "" {
			doc.SetFont("Helvetica", "I", 10)
			y = wrapped(doc, y, fmt.Sprintf("Error: %s", r.Error))
			doc.SetFont("Helvetica", "", 10)
		}

		y += 10
	}

	return doc.Output(w)
}

func line(doc *fpdf.Fpdf, y float64, text string) float64 {
	doc.Text(25, y, text)
	return y + 6
}

// wrapped breaks long lines at the text width, the fpdf analog of
// splitting text to size.
func wrapped(doc *fpdf.Fpdf, y float64, text string) float64 {
	lines := doc.SplitText(text, textWidth)
	for _, l := range lines {
		doc.Text(25, y, l)
		y += 5
	}
	return y
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func detailText(details any) string {
	if s, ok := details.(string); ok {
		return s
	}
	b, err := json.Marshal(details)
	if err != nil {
		return fmt.Sprintf("%v", details)
	}
	return string(b)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
