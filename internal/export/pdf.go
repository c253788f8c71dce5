package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/NgigiN/smscampaign/internal/ledger"
	"github.com/NgigiN/smscampaign/internal/sms"
)

const (
	pdfMargin     = 10.0
	pdfFirstLine  = 20.0
	pdfLineHeight = 8.0
	pdfLastLine   = 270.0
)

func pdfLine(tx ledger.Transaction) string {
	return fmt.Sprintf("Name: %s, Bank: %s, Amount: %s, Type: %s, User: %s, Status: %s, Time: %s",
		tx.Name, tx.Bank, sms.FormatAmount(tx.Amount), tx.Type, tx.UserType, tx.Status, tx.Time)
}

// paginate splits the log lines into pages the way they are laid out.
func paginate(records []ledger.Transaction) [][]string {
	pages := [][]string{{}}
	y := pdfFirstLine
	for _, tx := range records {
		if y > pdfLastLine {
			pages = append(pages, []string{})
			y = pdfFirstLine
		}
		pages[len(pages)-1] = append(pages[len(pages)-1], pdfLine(tx))
		y += pdfLineHeight
	}
	return pages
}

// PDF writes the transaction log as an A4 document.
func PDF(w io.Writer, records []ledger.Transaction) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 9)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, lines := range paginate(records) {
		pdf.AddPage()
		if i == 0 {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.Text(pdfMargin, pdfMargin, "Transaction Logs")
			pdf.SetFont("Helvetica", "", 9)
		}
		y := pdfFirstLine
		for _, line := range lines {
			pdf.Text(pdfMargin, y, tr(line))
			y += pdfLineHeight
		}
	}
	return pdf.Output(w)
}
