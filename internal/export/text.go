// Package export turns ledger contents into text, CSV, PDF and Markdown.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/NgigiN/smscampaign/internal/ledger"
	"github.com/NgigiN/smscampaign/internal/sms"
)

// FormatMoney prints amount in the given ISO currency, e.g. ₹1,250.50.
// The digits come from the decimal itself, so amounts past the int64 range
// of minor units still print correctly.
func FormatMoney(amount float64, code string) string {
	// money.New never returns a nil currency, even for unknown codes.
	cur := *money.New(0, code).Currency()
	f := cur.Formatter()
	d := decimal.NewFromFloat(amount).Round(int32(f.Fraction))

	whole, frac, _ := strings.Cut(d.Abs().StringFixed(int32(f.Fraction)), ".")
	if f.Thousand != "" {
		for i := len(whole) - 3; i > 0; i -= 3 {
			whole = whole[:i] + f.Thousand + whole[i:]
		}
	}
	if f.Fraction > 0 {
		whole += f.Decimal + frac
	}

	out := strings.Replace(f.Template, "1", whole, 1)
	out = strings.Replace(out, "$", f.Grapheme, 1)
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

// Text is the plain-text record saved for every sent alert.
func Text(tx ledger.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", tx.Name)
	fmt.Fprintf(&b, "Bank: %s\n", tx.Bank)
	fmt.Fprintf(&b, "Amount: %s\n", sms.FormatAmount(tx.Amount))
	fmt.Fprintf(&b, "Type: %s\n", tx.Type)
	fmt.Fprintf(&b, "User Type: %s\n", tx.UserType)
	fmt.Fprintf(&b, "Status: %s\n", tx.Status)
	fmt.Fprintf(&b, "Time: %s\n", tx.Time)
	return b.String()
}

// TextFileName is the name the text record is saved under.
func TextFileName(tx ledger.Transaction) string {
	return fmt.Sprintf("transaction_%d.txt", tx.ID)
}

// Details is the full view of one transaction including its pin state.
func Details(tx ledger.Transaction, pinned bool, currency string) string {
	yes := "No"
	if pinned {
		yes = "Yes"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %d\n", tx.ID)
	fmt.Fprintf(&b, "Name: %s\n", tx.Name)
	fmt.Fprintf(&b, "Bank: %s\n", tx.Bank)
	fmt.Fprintf(&b, "Amount: %s\n", FormatMoney(tx.Amount, currency))
	fmt.Fprintf(&b, "Type: %s\n", tx.Type)
	fmt.Fprintf(&b, "User Type: %s\n", tx.UserType)
	fmt.Fprintf(&b, "Status: %s\n", tx.Status)
	fmt.Fprintf(&b, "Time: %s\n", tx.Time)
	fmt.Fprintf(&b, "Pinned: %s\n", yes)
	return b.String()
}

// CSVHeader is the first line of a CSV export.
const CSVHeader = "Name,Bank,Amount,Type,UserType,Status,Time"

// CSV writes one comma-joined row per transaction. Fields are not quoted,
// so a comma inside a value shifts the columns of that row.
func CSV(w io.Writer, records []ledger.Transaction) error {
	if _, err := fmt.Fprintln(w, CSVHeader); err != nil {
		return err
	}
	for _, tx := range records {
		_, err := fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s,%s\n",
			tx.Name, tx.Bank, sms.FormatAmount(tx.Amount), tx.Type, tx.UserType, tx.Status, tx.Time)
		if err != nil {
			return err
		}
	}
	return nil
}
