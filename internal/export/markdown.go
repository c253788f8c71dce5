package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/NgigiN/smscampaign/internal/ledger"
)

const pinMark = "📌"

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func columnValue(tx ledger.Transaction, col Column, currency string) string {
	switch col {
	case ColName:
		return tx.Name
	case ColBank:
		return tx.Bank
	case ColAmount:
		return FormatMoney(tx.Amount, currency)
	case ColType:
		return string(tx.Type)
	case ColUserType:
		return tx.UserType
	case ColStatus:
		return string(tx.Status)
	case ColTime:
		return tx.Time
	}
	return ""
}

// Markdown renders records as a table. The id column is always shown and
// carries the pin marker.
func Markdown(records []ledger.Transaction, pinned ledger.IDSet, cols Columns, currency string) string {
	if len(records) == 0 {
		return "_No transactions._\n"
	}
	visible := cols.List()

	var b strings.Builder
	b.WriteString("| ID |")
	for _, col := range visible {
		fmt.Fprintf(&b, " %s |", headers[col])
	}
	b.WriteString("\n|---|")
	for range visible {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, tx := range records {
		id := strconv.FormatInt(tx.ID, 10)
		if pinned.Has(tx.ID) {
			id += " " + pinMark
		}
		fmt.Fprintf(&b, "| %s |", id)
		for _, col := range visible {
			fmt.Fprintf(&b, " %s |", cell(columnValue(tx, col, currency)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SummaryMarkdown renders the summary cards and the debit/credit split.
func SummaryMarkdown(s ledger.Summary, currency string) string {
	var b strings.Builder
	b.WriteString("## Summary\n\n")
	b.WriteString("| Total Debited | Total Credited | Transactions |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s | %d |\n\n",
		FormatMoney(s.DebitedSum, currency), FormatMoney(s.CreditedSum, currency), s.TotalCount)
	fmt.Fprintf(&b, "Debited (%d) %.1f%% · Credited (%d) %.1f%%\n",
		s.DebitedCount, s.DebitedPercent, s.CreditedCount, s.CreditedPercent)
	return b.String()
}

// Render styles markdown for the terminal using the light or dark theme.
func Render(markdown, theme string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	return r.Render(markdown)
}
