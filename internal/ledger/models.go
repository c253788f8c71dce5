package ledger

import (
	"math/rand/v2"
	"strings"
)

// Type is the direction of a simulated alert.
type Type string

const (
	Debited  Type = "debited"
	Credited Type = "credited"
)

func (t Type) Valid() bool {
	return t == Debited || t == Credited
}

// Status is the simulated delivery outcome of an alert. It is chosen once
// at creation and never changes afterwards.
type Status string

const (
	Delivered Status = "Delivered"
	Pending   Status = "Pending"
	Failed    Status = "Failed"
)

var statuses = []Status{Delivered, Pending, Failed}

// RandomStatus picks a delivery outcome uniformly at random.
func RandomStatus() Status {
	return statuses[rand.IntN(len(statuses))]
}

// TimeLayout is the layout of Transaction.Time.
const TimeLayout = "1/2/2006, 3:04:05 PM"

// Transaction represents one simulated SMS alert.
type Transaction struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Bank     string  `json:"bank"`
	Amount   float64 `json:"amount"`
	Type     Type    `json:"type"`
	UserType string  `json:"userType"`
	Status   Status  `json:"status"`
	Time     string  `json:"time"`
}

// Draft holds the fields entered for a new transaction.
type Draft struct {
	Name     string
	Bank     string
	Amount   float64
	Type     Type
	UserType string
}

// Changes holds the fields of an edit. Nil fields are left untouched.
// Amount is the raw text as entered.
type Changes struct {
	Name   *string
	Bank   *string
	Amount *string
}

// ParseType accepts "debited"/"credited" in any case.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &ValidationError{Field: "type", Reason: "must be debited or credited"}
	}
	return t, nil
}
