package renderer

import (
	"fmt"

	"github.com/etnz/brokerimport"
)

// Report is the flattened view of one document extraction, ready for
// templating.
type Report struct {
	Document string
	Profile  string
	Items    []ItemRow
	Errors   []string
}

// ItemRow is one extracted item flattened to display strings.
type ItemRow struct {
	Kind        string
	Date        string
	Description string
	Amount      string
	Status      string
}

// Imported counts the rows that will actually be imported.
func (r *Report) Imported() int {
	n := 0
	for _, row := range r.Items {
		if row.Status == "imported" {
			n++
		}
	}
	return n
}

// Failed counts the recognized-but-not-imported rows.
func (r *Report) Failed() int { return len(r.Items) - r.Imported() }

// NewReport flattens one extraction outcome.
func NewReport(document, profile string, items []brokerimport.Item, errs []error) *Report {
	r := &Report{Document: document, Profile: profile}
	for _, item := range items {
		r.Items = append(r.Items, itemRow(item))
	}
	for _, err := range errs {
		r.Errors = append(r.Errors, err.Error())
	}
	return r
}

func itemRow(item brokerimport.Item) ItemRow {
	status := "imported"
	if item.Failed() {
		status = "failed: " + item.FailureMessage()
	}
	switch it := item.(type) {
	case *brokerimport.SecurityItem:
		return ItemRow{
			Kind:        "security",
			Description: it.Security.String(),
			Amount:      it.Security.Currency(),
			Status:      status,
		}
	case *brokerimport.TransactionItem:
		tx := it.Transaction
		return ItemRow{
			Kind:        string(tx.Type),
			Date:        tx.Date.Format("2006-01-02"),
			Description: describe(tx.Security, tx.Note),
			Amount:      tx.MonetaryAmount().String(),
			Status:      status,
		}
	case *brokerimport.BuySellItem:
		e := it.Entry
		return ItemRow{
			Kind:        string(e.Account.Type),
			Date:        e.Date().Format("2006-01-02"),
			Description: fmt.Sprintf("%s × %s", e.Account.Shares, e.Account.Security),
			Amount:      e.MonetaryAmount().String(),
			Status:      status,
		}
	default:
		return ItemRow{Kind: fmt.Sprintf("%T", item), Status: status}
	}
}

func describe(sec *brokerimport.Security, note string) string {
	switch {
	case sec != nil && note != "":
		return sec.String() + ", " + note
	case sec != nil:
		return sec.String()
	default:
		return note
	}
}

// ReportMarkdown renders the Report struct to a markdown string.
func ReportMarkdown(r *Report) string {
	partials := map[string]string{
		"report_items":  "report_items.md",
		"report_errors": "report_errors.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}
