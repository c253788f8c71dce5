package ledger

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Ledger is the ordered list of simulated transactions. Insertion order is
// preserved and ids are unique.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	records []Transaction
	lastID  int64
	now     func() time.Time
	status  func() Status
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the clock used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithStatusPicker overrides how the simulated delivery status is chosen.
func WithStatusPicker(pick func() Status) Option {
	return func(l *Ledger) { l.status = pick }
}

// New returns a ledger holding a copy of records.
func New(records []Transaction, opts ...Option) *Ledger {
	l := &Ledger{
		now:    time.Now,
		status: RandomStatus,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.Restore(records)
	return l
}

// Add validates d and appends a new transaction built from it.
func (l *Ledger) Add(d Draft) (Transaction, error) {
	name := strings.TrimSpace(d.Name)
	bank := strings.TrimSpace(d.Bank)
	if name == "" {
		return Transaction{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if bank == "" {
		return Transaction{}, &ValidationError{Field: "bank", Reason: "must not be empty"}
	}
	if err := checkAmount(d.Amount); err != nil {
		return Transaction{}, err
	}
	if !d.Type.Valid() {
		return Transaction{}, &ValidationError{Field: "type", Reason: "must be debited or credited"}
	}

	now := l.now()
	tx := Transaction{
		ID:       l.nextID(now),
		Name:     name,
		Bank:     bank,
		Amount:   d.Amount,
		Type:     d.Type,
		UserType: strings.TrimSpace(d.UserType),
		Status:   l.status(),
		Time:     now.Format(TimeLayout),
	}
	l.records = append(l.records, tx)
	return tx, nil
}

func (l *Ledger) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return id
}

// Edit overwrites the name, bank and amount of the transaction with the
// given id. Id, type, status and time are never changed.
func (l *Ledger) Edit(id int64, c Changes) (Transaction, error) {
	i := l.index(id)
	if i < 0 {
		return Transaction{}, ErrNotFound
	}
	tx := l.records[i]
	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		if name == "" {
			return Transaction{}, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		tx.Name = name
	}
	if c.Bank != nil {
		bank := strings.TrimSpace(*c.Bank)
		if bank == "" {
			return Transaction{}, &ValidationError{Field: "bank", Reason: "must not be empty"}
		}
		tx.Bank = bank
	}
	if c.Amount != nil {
		amount, err := ParseAmount(*c.Amount)
		if err != nil {
			return Transaction{}, err
		}
		tx.Amount = amount
	}
	l.records[i] = tx
	return tx, nil
}

// Remove deletes the transaction with the given id.
func (l *Ledger) Remove(id int64) error {
	i := l.index(id)
	if i < 0 {
		return ErrNotFound
	}
	l.records = slices.Delete(l.records, i, i+1)
	return nil
}

// RemoveMany deletes every transaction whose id is in ids and returns how
// many were removed. Unknown ids are ignored.
func (l *Ledger) RemoveMany(ids IDSet) int {
	before := len(l.records)
	l.records = slices.DeleteFunc(l.records, func(tx Transaction) bool {
		return ids.Has(tx.ID)
	})
	return before - len(l.records)
}

func (l *Ledger) Clear() {
	l.records = nil
}

// Get returns the transaction with the given id.
func (l *Ledger) Get(id int64) (Transaction, bool) {
	i := l.index(id)
	if i < 0 {
		return Transaction{}, false
	}
	return l.records[i], true
}

func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns a copy of all transactions in insertion order.
func (l *Ledger) Records() []Transaction {
	return slices.Clone(l.records)
}

// Snapshot returns a deep copy for the undo stack.
func (l *Ledger) Snapshot() []Transaction {
	return l.Records()
}

// Restore replaces the whole ledger with a copy of records.
func (l *Ledger) Restore(records []Transaction) {
	l.records = slices.Clone(records)
	for _, tx := range l.records {
		if tx.ID > l.lastID {
			l.lastID = tx.ID
		}
	}
}

func (l *Ledger) index(id int64) int {
	return slices.IndexFunc(l.records, func(tx Transaction) bool { return tx.ID == id })
}

// ParseAmount parses a user-entered amount.
func ParseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ValidationError{Field: "amount", Reason: "must be a number"}
	}
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	return amount, nil
}

func checkAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &ValidationError{Field: "amount", Reason: "must be a number"}
	}
	if amount < 0 {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	return nil
}
