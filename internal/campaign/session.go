// Package campaign holds the state of one SMS campaign: the ledger, its
// undo history, pinned and selected transactions, the theme and the
// message templates, kept in step with a storage.Store.
package campaign

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/NgigiN/smscampaign/internal/ledger"
	"github.com/NgigiN/smscampaign/internal/sms"
	"github.com/NgigiN/smscampaign/internal/storage"
)

// ErrPersist wraps failures to save state. The in-memory change that
// triggered the save is kept.
var ErrPersist = errors.New("failed to persist campaign state")

type Session struct {
	mu        sync.Mutex
	store     storage.Store
	log       *logrus.Logger
	ledger    *ledger.Ledger
	undo      *ledger.UndoStack
	pinned    ledger.IDSet
	selected  ledger.IDSet
	theme     Theme
	templates []string
}

type options struct {
	log       *logrus.Logger
	undoDepth int
	ledger    []ledger.Option
}

type Option func(*options)

func WithLogger(log *logrus.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithUndoDepth bounds the undo history; zero or less is unbounded.
func WithUndoDepth(depth int) Option {
	return func(o *options) { o.undoDepth = depth }
}

func WithLedgerOptions(opts ...ledger.Option) Option {
	return func(o *options) { o.ledger = append(o.ledger, opts...) }
}

// Open loads the campaign state from store.
func Open(store storage.Store, opts ...Option) (*Session, error) {
	o := options{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	records, err := storage.LoadTransactions(store)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	pinned, err := storage.LoadPinned(store)
	if err != nil {
		return nil, fmt.Errorf("failed to load pinned ids: %w", err)
	}
	theme, err := storage.LoadTheme(store)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}
	templates, err := storage.LoadTemplates(store)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	o.log.WithFields(logrus.Fields{
		"transactions": len(records),
		"pinned":       len(pinned),
		"theme":        theme,
	}).Debug("Campaign.Open")

	return &Session{
		store:     store,
		log:       o.log,
		ledger:    ledger.New(records, o.ledger...),
		undo:      ledger.NewUndoStack(o.undoDepth),
		pinned:    pinned,
		selected:  ledger.NewIDSet(),
		theme:     Theme(theme),
		templates: templates,
	}, nil
}

// mutate runs fn against the ledger. A snapshot taken beforehand is pushed
// onto the undo stack only if fn succeeds, and the transactions are then
// saved.
func (s *Session) mutate(op string, fn func(l *ledger.Ledger) error) error {
	snapshot := s.ledger.Snapshot()
	if err := fn(s.ledger); err != nil {
		s.log.WithError(err).Warnf("Campaign.%s.Rejected", op)
		return err
	}
	s.undo.Push(snapshot)
	return s.saveTransactions(op)
}

func (s *Session) saveTransactions(op string) error {
	if err := storage.SaveTransactions(s.store, s.ledger.Records()); err != nil {
		s.log.WithError(err).WithField("key", storage.KeyTransactions).Errorf("Campaign.%s.Persist", op)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Session) savePinned() error {
	if err := storage.SavePinned(s.store, s.pinned); err != nil {
		s.log.WithError(err).WithField("key", storage.KeyPinnedIDs).Error("Campaign.Pin.Persist")
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Add records a new simulated alert.
func (s *Session) Add(d ledger.Draft) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tx ledger.Transaction
	err := s.mutate("Add", func(l *ledger.Ledger) error {
		var err error
		tx, err = l.Add(d)
		return err
	})
	if tx.ID != 0 {
		s.log.WithFields(logrus.Fields{"id": tx.ID, "type": tx.Type, "status": tx.Status}).Info("Campaign.Add")
	}
	return tx, err
}

func (s *Session) Edit(id int64, c ledger.Changes) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tx ledger.Transaction
	err := s.mutate("Edit", func(l *ledger.Ledger) error {
		var err error
		tx, err = l.Edit(id, c)
		return err
	})
	if err == nil {
		s.log.WithField("id", id).Info("Campaign.Edit")
	}
	return tx, err
}

func (s *Session) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.mutate("Delete", func(l *ledger.Ledger) error {
		return l.Remove(id)
	})
	if err == nil {
		s.selected.Remove(id)
		s.log.WithField("id", id).Info("Campaign.Delete")
	}
	return err
}

// DeleteSelected removes every selected transaction and clears the
// selection.
func (s *Session) DeleteSelected() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selected) == 0 {
		return 0, ledger.ErrNothingSelected
	}
	var removed int
	err := s.mutate("DeleteSelected", func(l *ledger.Ledger) error {
		if removed = l.RemoveMany(s.selected); removed == 0 {
			return ledger.ErrNotFound
		}
		return nil
	})
	s.selected = ledger.NewIDSet()
	if removed > 0 {
		s.log.WithField("count", removed).Info("Campaign.DeleteSelected")
	}
	return removed, err
}

// DeleteMany removes the given transactions in one undoable step and
// returns how many existed.
func (s *Session) DeleteMany(ids ...int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := ledger.NewIDSet(ids...)
	var removed int
	err := s.mutate("DeleteMany", func(l *ledger.Ledger) error {
		if removed = l.RemoveMany(set); removed == 0 {
			return ledger.ErrNotFound
		}
		return nil
	})
	if removed > 0 {
		for id := range set {
			s.selected.Remove(id)
		}
		s.log.WithField("count", removed).Info("Campaign.DeleteMany")
	}
	return removed, err
}

func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.mutate("Clear", func(l *ledger.Ledger) error {
		l.Clear()
		return nil
	})
	s.selected = ledger.NewIDSet()
	s.log.Info("Campaign.Clear")
	return err
}

// Undo restores the ledger as it was before the last change.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.undo.Pop()
	if err != nil {
		return err
	}
	s.ledger.Restore(snapshot)
	for id := range s.selected {
		if _, ok := s.ledger.Get(id); !ok {
			s.selected.Remove(id)
		}
	}
	s.log.WithField("transactions", len(snapshot)).Info("Campaign.Undo")
	return s.saveTransactions("Undo")
}

func (s *Session) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo.Len()
}

// TogglePin pins or unpins id and reports whether it is now pinned. Only
// existing transactions can be pinned; stale ids can always be unpinned.
func (s *Session) TogglePin(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pinned.Has(id) {
		if _, ok := s.ledger.Get(id); !ok {
			return false, ledger.ErrNotFound
		}
	}
	pinned := s.pinned.Toggle(id)
	s.log.WithFields(logrus.Fields{"id": id, "pinned": pinned}).Info("Campaign.TogglePin")
	return pinned, s.savePinned()
}

func (s *Session) IsPinned(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pinned.Has(id)
}

func (s *Session) Pinned() ledger.IDSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pinned.Clone()
}

// Select marks id for the next bulk action.
func (s *Session) Select(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ledger.Get(id); !ok {
		return ledger.ErrNotFound
	}
	s.selected.Add(id)
	return nil
}

func (s *Session) Deselect(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected.Remove(id)
}

func (s *Session) Selected() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Sorted()
}

func (s *Session) Get(id int64) (ledger.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Get(id)
}

// Records returns every transaction in insertion order.
func (s *Session) Records() []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Records()
}

// View returns the transactions matching f, pinned ones first.
func (s *Session) View(f ledger.Filter) []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.SortPinnedFirst(s.ledger.Filter(f), s.pinned)
}

func (s *Session) Summary() ledger.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Aggregate()
}

func (s *Session) Templates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.templates)
}

// SetTemplates replaces the message templates. Every template must use at
// least one placeholder.
func (s *Session) SetTemplates(templates []string) error {
	for _, t := range templates {
		if err := sms.CheckTemplate(t); err != nil {
			return err
		}
	}
	if len(templates) == 0 {
		templates = sms.DefaultTemplates
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = slices.Clone(templates)
	if err := storage.SaveTemplates(s.store, s.templates); err != nil {
		s.log.WithError(err).WithField("key", storage.KeyTemplates).Error("Campaign.SetTemplates.Persist")
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Session) AddTemplate(template string) error {
	return s.SetTemplates(append(s.Templates(), template))
}

// Message renders the alert for id with the template at index.
func (s *Session) Message(id int64, index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.ledger.Get(id)
	if !ok {
		return "", ledger.ErrNotFound
	}
	if index < 0 || index >= len(s.templates) {
		return "", &ledger.ValidationError{Field: "template", Reason: fmt.Sprintf("index must be between 0 and %d", len(s.templates)-1)}
	}
	return sms.Render(s.templates[index], tx), nil
}
