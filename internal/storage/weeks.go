package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/paygo/internal/domain"
)

// MaxWeeks is the number of saved weeks kept; older weeks are dropped on save
const MaxWeeks = 20

// WeekStore keeps the saved weeks list and the last form state in a KV store.
// Weeks are stored newest-saved first.
type WeekStore struct {
	mu sync.Mutex
	kv KV
}

// NewWeekStore creates a week store on top of kv
func NewWeekStore(kv KV) *WeekStore {
	return &WeekStore{kv: kv}
}

// List returns saved weeks in the order they were saved, newest first
func (s *WeekStore) List(ctx context.Context) ([]domain.WeekRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// ListByPayday returns saved weeks ordered by payday, latest first
func (s *WeekStore) ListByPayday(ctx context.Context) ([]domain.WeekRecord, error) {
	weeks, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].Payday.After(weeks[j].Payday)
	})
	return weeks, nil
}

// Get returns the week with the given ID, or ErrNotFound
func (s *WeekStore) Get(ctx context.Context, id string) (domain.WeekRecord, error) {
	weeks, err := s.List(ctx)
	if err != nil {
		return domain.WeekRecord{}, err
	}
	for _, w := range weeks {
		if w.ID == id {
			return w, nil
		}
	}
	return domain.WeekRecord{}, fmt.Errorf("week %s: %w", id, ErrNotFound)
}

// Save stores rec at the front of the list. If a week with the same payday
// exists, Save returns ErrDuplicatePayday unless overwrite is set, in which
// case rec replaces that week in its existing position. Only the newest
// MaxWeeks are kept.
func (s *WeekStore) Save(ctx context.Context, rec domain.WeekRecord, overwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	weeks, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i, w := range weeks {
		if !w.SamePayday(rec) {
			continue
		}
		if !overwrite {
			return fmt.Errorf("payday %s: %w", rec.Payday.Format(domain.DateLayout), ErrDuplicatePayday)
		}
		weeks[i] = rec
		return s.store(ctx, weeks)
	}

	weeks = append([]domain.WeekRecord{rec}, weeks...)
	if len(weeks) > MaxWeeks {
		weeks = weeks[:MaxWeeks]
	}
	return s.store(ctx, weeks)
}

// Delete removes the week with the given ID, or returns ErrNotFound
func (s *WeekStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	weeks, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i, w := range weeks {
		if w.ID == id {
			return s.store(ctx, append(weeks[:i], weeks[i+1:]...))
		}
	}
	return fmt.Errorf("week %s: %w", id, ErrNotFound)
}

// LoadFormState returns the last saved form, or the default form when none is stored
func (s *WeekStore) LoadFormState(ctx context.Context) (domain.FormState, error) {
	data, err := s.kv.Get(ctx, KeyFormState)
	if errors.Is(err, ErrNotFound) {
		return domain.DefaultFormState(), nil
	}
	if err != nil {
		return domain.FormState{}, err
	}
	var form domain.FormState
	if err := json.Unmarshal(data, &form); err != nil {
		return domain.FormState{}, fmt.Errorf("failed to decode form state: %w", err)
	}
	return form, nil
}

// SaveFormState stores the form values as entered
func (s *WeekStore) SaveFormState(ctx context.Context, form domain.FormState) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to encode form state: %w", err)
	}
	return s.kv.Set(ctx, KeyFormState, data)
}

func (s *WeekStore) load(ctx context.Context) ([]domain.WeekRecord, error) {
	data, err := s.kv.Get(ctx, KeyWeeks)
	if errors.Is(err, ErrNotFound) {
		return []domain.WeekRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	var weeks []domain.WeekRecord
	if err := json.Unmarshal(data, &weeks); err != nil {
		return nil, fmt.Errorf("failed to decode saved weeks: %w", err)
	}
	return weeks, nil
}

func (s *WeekStore) store(ctx context.Context, weeks []domain.WeekRecord) error {
	data, err := json.Marshal(weeks)
	if err != nil {
		return fmt.Errorf("failed to encode saved weeks: %w", err)
	}
	return s.kv.Set(ctx, KeyWeeks, data)
}
