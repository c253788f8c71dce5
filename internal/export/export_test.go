package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NgigiN/smscampaign/internal/ledger"
)

var asha = ledger.Transaction{
	ID: 1726592160000, Name: "Asha", Bank: "HDFC", Amount: 500, Type: ledger.Credited,
	UserType: "new", Status: ledger.Delivered, Time: "9/17/2025, 6:56:00 PM",
}

var ravi = ledger.Transaction{
	ID: 1726592170000, Name: "Ravi", Bank: "SBI", Amount: 1250.5, Type: ledger.Debited,
	UserType: "existing", Status: ledger.Pending, Time: "9/17/2025, 6:56:10 PM",
}

func TestText(t *testing.T) {
	want := "Name: Asha\n" +
		"Bank: HDFC\n" +
		"Amount: 500\n" +
		"Type: credited\n" +
		"User Type: new\n" +
		"Status: Delivered\n" +
		"Time: 9/17/2025, 6:56:00 PM\n"
	assert.Equal(t, want, Text(asha))
	assert.Equal(t, "transaction_1726592160000.txt", TextFileName(asha))
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, []ledger.Transaction{asha, ravi}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Bank,Amount,Type,UserType,Status,Time", lines[0])
	assert.Equal(t, "Asha,HDFC,500,credited,new,Delivered,9/17/2025, 6:56:00 PM", lines[1])
	assert.Equal(t, "Ravi,SBI,1250.5,debited,existing,Pending,9/17/2025, 6:56:10 PM", lines[2])
}

func TestCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, nil))
	assert.Equal(t, CSVHeader+"\n", buf.String())
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,250.50", FormatMoney(1250.5, "USD"))
	assert.Equal(t, "$0.00", FormatMoney(0, "USD"))
	assert.Equal(t, "$0.13", FormatMoney(0.125, "USD"))
	assert.Equal(t, "¥1,250", FormatMoney(1250.4, "JPY"))
}

func TestFormatMoney_BeyondInt64MinorUnits(t *testing.T) {
	assert.Equal(t, "₹90,000,000,000,000,000.00", FormatMoney(9e16, "INR"))
	assert.Equal(t, "₹100,000,000,000,000,000.00", FormatMoney(1e17, "INR"))
	assert.Equal(t, "₹1,000,000,000,000,000,000.00", FormatMoney(1e18, "INR"))

	s := ledger.Aggregate([]ledger.Transaction{
		{Amount: 6e16, Type: ledger.Credited},
		{Amount: 6e16, Type: ledger.Credited},
	})
	assert.Equal(t, "₹120,000,000,000,000,000.00", FormatMoney(s.CreditedSum, "INR"))
}

func TestDetails(t *testing.T) {
	got := Details(asha, true, "USD")
	assert.Contains(t, got, "Amount: $500.00\n")
	assert.Contains(t, got, "Pinned: Yes\n")
	assert.Contains(t, Details(asha, false, "USD"), "Pinned: No\n")
}

func TestPaginate(t *testing.T) {
	assert.Equal(t, [][]string{{}}, paginate(nil))

	records := make([]ledger.Transaction, 33)
	pages := paginate(records)
	require.Len(t, pages, 2)
	assert.Len(t, pages[0], 32)
	assert.Len(t, pages[1], 1)

	pages = paginate(records[:32])
	assert.Len(t, pages, 1, "no trailing blank page")
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, []ledger.Transaction{asha, ravi}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestMarkdown(t *testing.T) {
	cols, err := HideColumns("userType, time")
	require.NoError(t, err)

	got := Markdown([]ledger.Transaction{asha, ravi}, ledger.NewIDSet(ravi.ID), cols, "USD")
	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| ID | Name | Bank | Amount | Type | Status |", lines[0])
	assert.Equal(t, "|---|---|---|---|---|---|", lines[1])
	assert.Equal(t, "| 1726592160000 | Asha | HDFC | $500.00 | credited | Delivered |", lines[2])
	assert.Equal(t, "| 1726592170000 📌 | Ravi | SBI | $1,250.50 | debited | Pending |", lines[3])
}

func TestMarkdown_EscapesPipes(t *testing.T) {
	tx := asha
	tx.Name = "A|B"
	got := Markdown([]ledger.Transaction{tx}, nil, Columns{}, "USD")
	assert.Contains(t, got, `| A\|B |`)
}

func TestSummaryMarkdown(t *testing.T) {
	s := ledger.Aggregate([]ledger.Transaction{asha, ravi})
	got := SummaryMarkdown(s, "USD")
	assert.Contains(t, got, "| $1,250.50 | $500.00 | 2 |")
	assert.Contains(t, got, "Debited (1) 50.0% · Credited (1) 50.0%")
}

func TestRender(t *testing.T) {
	out, err := Render("Hello world", "notty", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Hello world")
}

func TestColumns(t *testing.T) {
	var c Columns
	assert.Len(t, c.List(), 7)
	assert.False(t, c.Toggle(ColBank))
	assert.False(t, c.Visible(ColBank))
	assert.True(t, c.Toggle(ColBank))

	_, err := HideColumns("bank,colour")
	assert.Error(t, err)
}

func TestHTML(t *testing.T) {
	tx := asha
	tx.Name = "A|B"
	md := Markdown([]ledger.Transaction{tx}, nil, Columns{}, "USD")

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, md))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>A|B</td>")
	assert.Contains(t, out, "<td>$500.00</td>")
}
