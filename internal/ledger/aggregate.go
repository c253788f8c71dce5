package ledger

import "github.com/shopspring/decimal"

// Summary holds the totals shown on the summary cards.
type Summary struct {
	DebitedSum      float64 `json:"debitedSum"`
	CreditedSum     float64 `json:"creditedSum"`
	DebitedCount    int     `json:"debitedCount"`
	CreditedCount   int     `json:"creditedCount"`
	TotalCount      int     `json:"totalCount"`
	DebitedPercent  float64 `json:"debitedPercent"`
	CreditedPercent float64 `json:"creditedPercent"`
}

// Aggregate computes the summary over all transactions. With nothing to
// count the split is reported as 50/50.
func (l *Ledger) Aggregate() Summary {
	return Aggregate(l.records)
}

// Aggregate computes the summary over records.
func Aggregate(records []Transaction) Summary {
	var debited, credited decimal.Decimal
	var s Summary
	for _, tx := range records {
		switch tx.Type {
		case Debited:
			debited = debited.Add(decimal.NewFromFloat(tx.Amount))
			s.DebitedCount++
		case Credited:
			credited = credited.Add(decimal.NewFromFloat(tx.Amount))
			s.CreditedCount++
		}
	}
	s.DebitedSum = debited.InexactFloat64()
	s.CreditedSum = credited.InexactFloat64()
	s.TotalCount = s.DebitedCount + s.CreditedCount

	if s.TotalCount == 0 {
		s.DebitedPercent, s.CreditedPercent = 50, 50
		return s
	}
	s.DebitedPercent = float64(s.DebitedCount) / float64(s.TotalCount) * 100
	s.CreditedPercent = 100 - s.DebitedPercent
	return s
}
