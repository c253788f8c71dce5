package campaign

import (
	"fmt"

	"github.com/NgigiN/smscampaign/internal/ledger"
	"github.com/NgigiN/smscampaign/internal/storage"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

func (t Theme) Icon() string {
	if t == Dark {
		return "🌙"
	}
	return "☀️"
}

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	}
	return "", &ledger.ValidationError{Field: "theme", Reason: "must be light or dark"}
}

func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *Session) SetTheme(t Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setTheme(t)
}

// ToggleTheme switches between light and dark and returns the new theme.
func (s *Session) ToggleTheme() (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Dark
	if s.theme == Dark {
		next = Light
	}
	return next, s.setTheme(next)
}

func (s *Session) setTheme(t Theme) error {
	s.theme = t
	if err := storage.SaveTheme(s.store, string(t)); err != nil {
		s.log.WithError(err).WithField("key", storage.KeyTheme).Error("Campaign.SetTheme.Persist")
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
