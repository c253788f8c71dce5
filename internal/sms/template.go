// Package sms renders simulated bank alerts from message templates and
// reads them back.
package sms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NgigiN/smscampaign/internal/ledger"
)

// DefaultTemplates are used until the user saves their own.
var DefaultTemplates = []string{
	"Dear {name}, your account at {bank} has been {type} with ₹{amount}.",
	"Hi {name}, {amount} was {type} from your {bank} account.",
	"Hello {name}, transaction of ₹{amount} ({type}) at {bank}.",
}

// Placeholders lists the substitutions a template may use.
var Placeholders = []string{"{name}", "{bank}", "{amount}", "{type}"}

// FormatAmount prints an amount with as many digits as it needs.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// Render fills the placeholders of template from tx.
func Render(template string, tx ledger.Transaction) string {
	r := strings.NewReplacer(
		"{name}", tx.Name,
		"{bank}", tx.Bank,
		"{amount}", FormatAmount(tx.Amount),
		"{type}", string(tx.Type),
	)
	return r.Replace(template)
}

// Preview is the alert as shown right after it was sent.
func Preview(tx ledger.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: Dear %s, your account has been %s with ₹%s.\n",
		tx.Bank, tx.Name, tx.Type, FormatAmount(tx.Amount))
	fmt.Fprintf(&b, "User: %s\n", tx.UserType)
	fmt.Fprintf(&b, "Status: %s\n", tx.Status)
	b.WriteString(tx.Time)
	return b.String()
}

// CheckTemplate rejects templates that reference nothing from the
// transaction.
func CheckTemplate(template string) error {
	if strings.TrimSpace(template) == "" {
		return &ledger.ValidationError{Field: "template", Reason: "must not be empty"}
	}
	for _, p := range Placeholders {
		if strings.Contains(template, p) {
			return nil
		}
	}
	return &ledger.ValidationError{Field: "template", Reason: "must use at least one of " + strings.Join(Placeholders, " ")}
}
