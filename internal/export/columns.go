package export

import (
	"fmt"
	"strings"
)

// Column is a toggleable column of the transaction table.
type Column string

const (
	ColName     Column = "name"
	ColBank     Column = "bank"
	ColAmount   Column = "amount"
	ColType     Column = "type"
	ColUserType Column = "userType"
	ColStatus   Column = "status"
	ColTime     Column = "time"
)

var allColumns = []Column{ColName, ColBank, ColAmount, ColType, ColUserType, ColStatus, ColTime}

var headers = map[Column]string{
	ColName:     "Name",
	ColBank:     "Bank",
	ColAmount:   "Amount",
	ColType:     "Type",
	ColUserType: "User Type",
	ColStatus:   "Status",
	ColTime:     "Time",
}

// Columns records which columns are visible. The zero value hides nothing.
type Columns struct {
	hidden map[Column]bool
}

func (c *Columns) Visible(col Column) bool {
	return !c.hidden[col]
}

// Toggle flips a column and reports whether it is now visible.
func (c *Columns) Toggle(col Column) bool {
	if c.hidden == nil {
		c.hidden = make(map[Column]bool)
	}
	c.hidden[col] = !c.hidden[col]
	return !c.hidden[col]
}

// List returns the visible columns in display order.
func (c *Columns) List() []Column {
	var out []Column
	for _, col := range allColumns {
		if c.Visible(col) {
			out = append(out, col)
		}
	}
	return out
}

// HideColumns parses a comma-separated list such as "bank,time" into a
// Columns with those hidden.
func HideColumns(list string) (Columns, error) {
	var c Columns
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		col, ok := lookupColumn(name)
		if !ok {
			return Columns{}, fmt.Errorf("unknown column %q", name)
		}
		if c.Visible(col) {
			c.Toggle(col)
		}
	}
	return c, nil
}

func lookupColumn(name string) (Column, bool) {
	for _, col := range allColumns {
		if strings.EqualFold(string(col), name) {
			return col, true
		}
	}
	return "", false
}
