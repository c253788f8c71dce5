package ledger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Transaction {
	return []Transaction{
		{ID: 1, Name: "Asha", Bank: "HDFC", Amount: 500, Type: Credited, Time: "9/17/2025, 6:56:00 PM"},
		{ID: 2, Name: "Ravi", Bank: "SBI", Amount: 120.5, Type: Debited, Time: "9/18/2025, 7:18:00 PM"},
		{ID: 3, Name: "ashok", Bank: "ICICI", Amount: 40, Type: Debited, Time: "not a date"},
		{ID: 4, Name: "Meera", Bank: "Axis", Amount: 60, Type: Credited, Time: "9/20/2025, 9:00:00 AM"},
	}
}

func ids(records []Transaction) []int64 {
	out := make([]int64, len(records))
	for i, tx := range records {
		out[i] = tx.ID
	}
	return out
}

func TestFilter_AllReturnsInsertionOrder(t *testing.T) {
	l := New(sampleRecords())
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(l.Filter(Filter{Query: "", Type: "all"})))
}

func TestFilter_NameCaseInsensitive(t *testing.T) {
	l := New(sampleRecords())
	assert.Equal(t, []int64{1, 3}, ids(l.Filter(Filter{Query: "ASH"})))
}

func TestFilter_Type(t *testing.T) {
	l := New(sampleRecords())
	assert.Equal(t, []int64{2, 3}, ids(l.Filter(Filter{Type: "debited"})))
	assert.Equal(t, []int64{1, 4}, ids(l.Filter(Filter{Query: "", Type: "credited"})))
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	l := New(sampleRecords())

	got := l.Filter(Filter{From: "2025-09-17", To: "2025-09-18"})
	assert.Equal(t, []int64{1, 2}, ids(got), "unparseable time is excluded")
}

func TestFilter_DateRangeIgnoredWhenIncomplete(t *testing.T) {
	l := New(sampleRecords())

	assert.Len(t, l.Filter(Filter{From: "2025-09-17"}), 4)
	assert.Len(t, l.Filter(Filter{From: "2025-09-17", To: "tomorrow"}), 4)
}

func TestSortPinnedFirst_Stable(t *testing.T) {
	records := []Transaction{{ID: 'A'}, {ID: 'B'}, {ID: 'C'}, {ID: 'D'}}

	got := SortPinnedFirst(records, NewIDSet('C'))
	assert.Equal(t, []int64{'C', 'A', 'B', 'D'}, ids(got))

	got = SortPinnedFirst(records, NewIDSet('D', 'B', 'Z'))
	assert.Equal(t, []int64{'B', 'D', 'A', 'C'}, ids(got))
}

func TestAggregate_Empty(t *testing.T) {
	s := New(nil).Aggregate()

	assert.Equal(t, Summary{DebitedPercent: 50, CreditedPercent: 50}, s)
}

func TestAggregate_Totals(t *testing.T) {
	s := New(sampleRecords()).Aggregate()

	assert.Equal(t, 160.5, s.DebitedSum)
	assert.Equal(t, 560.0, s.CreditedSum)
	assert.Equal(t, 2, s.DebitedCount)
	assert.Equal(t, 2, s.CreditedCount)
	assert.Equal(t, s.DebitedCount+s.CreditedCount, s.TotalCount)
	assert.InDelta(t, 100, s.DebitedPercent+s.CreditedPercent, 1e-9)
	assert.InDelta(t, 50, s.DebitedPercent, 1e-9)
}

func TestAggregate_DecimalSums(t *testing.T) {
	records := []Transaction{
		{ID: 1, Amount: 0.1, Type: Debited},
		{ID: 2, Amount: 0.2, Type: Debited},
		{ID: 3, Amount: 1, Type: Credited},
		{ID: 4, Amount: 9, Type: "unknown"},
	}
	s := Aggregate(records)

	assert.Equal(t, 0.3, s.DebitedSum)
	assert.Equal(t, 3, s.TotalCount, "untyped records are not counted")
	assert.InDelta(t, 66.666, s.DebitedPercent, 0.001)
}

func TestIDSet_JSON(t *testing.T) {
	data, err := json.Marshal(NewIDSet(3, 1, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3]`, string(data))

	data, err = json.Marshal(IDSet(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	var s IDSet
	require.NoError(t, json.Unmarshal([]byte(`[5,5,7]`), &s))
	assert.Equal(t, []int64{5, 7}, s.Sorted())
}

func TestIDSet_Toggle(t *testing.T) {
	s := NewIDSet()
	assert.True(t, s.Toggle(1))
	assert.True(t, s.Has(1))
	assert.False(t, s.Toggle(1))
	assert.False(t, s.Has(1))
}

func TestTransaction_DecodesLegacyPinnedField(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"id":1,"name":"Asha","bank":"HDFC","amount":500,"type":"credited","userType":"new","status":"Pending","time":"9/17/2025, 6:56:00 PM","pinned":true}`), &tx)
	require.NoError(t, err)
	assert.Equal(t, Transaction{ID: 1, Name: "Asha", Bank: "HDFC", Amount: 500, Type: Credited, UserType: "new", Status: Pending, Time: "9/17/2025, 6:56:00 PM"}, tx)
}
