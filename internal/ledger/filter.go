package ledger

import (
	"strings"
	"time"
)

// DateLayout is the layout of Filter.From and Filter.To.
const DateLayout = "2006-01-02"

// Filter selects transactions for display.
type Filter struct {
	Query string // case-insensitive substring of the name
	Type  string // "all" or empty matches both types
	From  string // inclusive, DateLayout
	To    string // inclusive, DateLayout
}

// timeLayouts are tried in order when reading Transaction.Time.
var timeLayouts = []string{
	TimeLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"1/2/2006, 15:04:05",
	DateLayout,
}

// ParseTime parses a transaction timestamp in any of the accepted layouts.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateRange returns the bounds when both parse; ok is false otherwise and
// the range is then ignored.
func (f Filter) dateRange() (from, to time.Time, ok bool) {
	if f.From == "" || f.To == "" {
		return
	}
	from, errFrom := time.Parse(DateLayout, strings.TrimSpace(f.From))
	to, errTo := time.Parse(DateLayout, strings.TrimSpace(f.To))
	if errFrom != nil || errTo != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to.AddDate(0, 0, 1), true
}

// Filter returns the matching transactions in insertion order.
func (l *Ledger) Filter(f Filter) []Transaction {
	query := strings.ToLower(f.Query)
	typ := strings.ToLower(strings.TrimSpace(f.Type))
	from, to, ranged := f.dateRange()

	var out []Transaction
	for _, tx := range l.records {
		if !strings.Contains(strings.ToLower(tx.Name), query) {
			continue
		}
		if typ != "" && typ != "all" && string(tx.Type) != typ {
			continue
		}
		if ranged {
			t, ok := ParseTime(tx.Time)
			if !ok {
				continue
			}
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			if day.Before(from) || !day.Before(to) {
				continue
			}
		}
		out = append(out, tx)
	}
	return out
}

// SortPinnedFirst moves pinned transactions to the front, keeping the
// relative order inside both groups.
func SortPinnedFirst(records []Transaction, pinned IDSet) []Transaction {
	out := make([]Transaction, 0, len(records))
	for _, tx := range records {
		if pinned.Has(tx.ID) {
			out = append(out, tx)
		}
	}
	for _, tx := range records {
		if !pinned.Has(tx.ID) {
			out = append(out, tx)
		}
	}
	return out
}
