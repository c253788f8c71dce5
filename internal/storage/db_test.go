package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NgigiN/smscampaign/internal/ledger"
	"github.com/NgigiN/smscampaign/internal/sms"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "campaign.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"sqlite": newTestDatabase(t),
		"memory": NewMemoryStore(),
	}
}

func TestStore_MissingKey(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			dst := "untouched"
			found, err := s.Load("nope", &dst)
			assert.NoError(t, err)
			assert.False(t, found)
			assert.Equal(t, "untouched", dst)
		})
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(KeyTheme, "dark"))
			require.NoError(t, s.Save(KeyTheme, "light"))

			var theme string
			found, err := s.Load(KeyTheme, &theme)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "light", theme)
		})
	}
}

func TestState_Defaults(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			records, err := LoadTransactions(s)
			require.NoError(t, err)
			assert.Empty(t, records)

			pinned, err := LoadPinned(s)
			require.NoError(t, err)
			assert.NotNil(t, pinned)
			assert.Empty(t, pinned)

			theme, err := LoadTheme(s)
			require.NoError(t, err)
			assert.Equal(t, "light", theme)

			templates, err := LoadTemplates(s)
			require.NoError(t, err)
			assert.Equal(t, sms.DefaultTemplates, templates)
		})
	}
}

func TestState_RoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			records := []ledger.Transaction{
				{ID: 1726592160000, Name: "Asha", Bank: "HDFC", Amount: 500.125, Type: ledger.Credited, UserType: "new", Status: ledger.Pending, Time: "9/17/2025, 6:56:00 PM"},
			}
			require.NoError(t, SaveTransactions(s, records))
			require.NoError(t, SavePinned(s, ledger.NewIDSet(1726592160000, 7)))
			require.NoError(t, SaveTheme(s, "dark"))
			require.NoError(t, SaveTemplates(s, []string{"Hey {name}"}))

			gotRecords, err := LoadTransactions(s)
			require.NoError(t, err)
			assert.Equal(t, records, gotRecords)

			pinned, err := LoadPinned(s)
			require.NoError(t, err)
			assert.Equal(t, []int64{7, 1726592160000}, pinned.Sorted())

			theme, err := LoadTheme(s)
			require.NoError(t, err)
			assert.Equal(t, "dark", theme)

			templates, err := LoadTemplates(s)
			require.NoError(t, err)
			assert.Equal(t, []string{"Hey {name}"}, templates)
		})
	}
}

func TestDatabase_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaign.db")

	db, err := NewDatabase(path)
	require.NoError(t, err)
	require.NoError(t, SaveTheme(db, "dark"))
	require.NoError(t, db.Close())

	db, err = NewDatabase(path)
	require.NoError(t, err)
	defer db.Close()

	theme, err := LoadTheme(db)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}

func TestMemoryStore_EmptyListEncoding(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, SaveTransactions(s, nil))

	raw, ok := s.Raw(KeyTransactions)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestMemoryStore_CorruptValue(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Save(KeyTransactions, "not a list"))

	_, err := LoadTransactions(s)
	assert.Error(t, err)
}
