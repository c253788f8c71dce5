package storage

import (
	"slices"

	"github.com/NgigiN/smscampaign/internal/ledger"
	"github.com/NgigiN/smscampaign/internal/sms"
)

const DefaultTheme = "light"

func LoadTransactions(s Store) ([]ledger.Transaction, error) {
	var records []ledger.Transaction
	if _, err := s.Load(KeyTransactions, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func SaveTransactions(s Store, records []ledger.Transaction) error {
	if records == nil {
		records = []ledger.Transaction{}
	}
	return s.Save(KeyTransactions, records)
}

func LoadPinned(s Store) (ledger.IDSet, error) {
	pinned := ledger.NewIDSet()
	if _, err := s.Load(KeyPinnedIDs, &pinned); err != nil {
		return nil, err
	}
	if pinned == nil {
		pinned = ledger.NewIDSet()
	}
	return pinned, nil
}

func SavePinned(s Store, pinned ledger.IDSet) error {
	return s.Save(KeyPinnedIDs, pinned)
}

// LoadTheme returns "light" unless "dark" was saved.
func LoadTheme(s Store) (string, error) {
	var theme string
	if _, err := s.Load(KeyTheme, &theme); err != nil {
		return DefaultTheme, err
	}
	if theme != "dark" {
		theme = DefaultTheme
	}
	return theme, nil
}

func SaveTheme(s Store, theme string) error {
	return s.Save(KeyTheme, theme)
}

// LoadTemplates falls back to the built-in templates when none were saved.
func LoadTemplates(s Store) ([]string, error) {
	var templates []string
	found, err := s.Load(KeyTemplates, &templates)
	if err != nil {
		return slices.Clone(sms.DefaultTemplates), err
	}
	if !found || len(templates) == 0 {
		return slices.Clone(sms.DefaultTemplates), nil
	}
	return templates, nil
}

func SaveTemplates(s Store, templates []string) error {
	return s.Save(KeyTemplates, templates)
}
