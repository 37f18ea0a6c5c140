package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWeek(t *testing.T, start string, net string) domain.WeekRecord {
	t.Helper()
	weekStart, err := time.Parse(domain.DateLayout, start)
	require.NoError(t, err)

	res := &domain.DeductionResult{
		GrossPay: decimal.NewFromInt(500),
		NetPay:   decimal.RequireFromString(net),
		TaxCode:  "1257L",
	}
	in := domain.DeductionInput{PayRate: decimal.RequireFromString("12.5"), HoursWorked: decimal.NewFromInt(40)}
	rec, err := domain.NewWeekRecord(weekStart, in, res, time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return rec
}

func TestWeekStore_SaveAndList(t *testing.T) {
	ctx := context.Background()

	for name, kv := range createTestKVs(t) {
		t.Run(name, func(t *testing.T) {
			store := NewWeekStore(kv)

			weeks, err := store.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, weeks)

			first := testWeek(t, "2024-06-03", "397.89")
			second := testWeek(t, "2024-06-10", "410.00")
			require.NoError(t, store.Save(ctx, first, false))
			require.NoError(t, store.Save(ctx, second, false))

			weeks, err = store.List(ctx)
			require.NoError(t, err)
			require.Len(t, weeks, 2)
			assert.Equal(t, second.ID, weeks[0].ID, "Newest save comes first")
			assert.Equal(t, first.ID, weeks[1].ID)
			assert.True(t, weeks[1].Payday.Equal(first.Payday))
			assert.Equal(t, "397.89", weeks[1].NetPay.StringFixed(2))

			got, err := store.Get(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, first.ID, got.ID)
		})
	}
}

func TestWeekStore_DuplicatePayday(t *testing.T) {
	ctx := context.Background()
	store := NewWeekStore(NewMemoryKV())

	original := testWeek(t, "2024-06-03", "397.89")
	require.NoError(t, store.Save(ctx, original, false))

	// Same week start, so the same payday
	replacement := testWeek(t, "2024-06-03", "420.00")
	err := store.Save(ctx, replacement, false)
	assert.ErrorIs(t, err, ErrDuplicatePayday)
	assert.ErrorContains(t, err, "2024-06-14")

	weeks, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, original.ID, weeks[0].ID, "Rejected save leaves the store unchanged")

	require.NoError(t, store.Save(ctx, replacement, true))
	weeks, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, replacement.ID, weeks[0].ID)
	assert.Equal(t, "420.00", weeks[0].NetPay.StringFixed(2))
}

func TestWeekStore_OverwriteKeepsPosition(t *testing.T) {
	ctx := context.Background()

	for name, kv := range createTestKVs(t) {
		t.Run(name, func(t *testing.T) {
			store := NewWeekStore(kv)

			older := testWeek(t, "2024-06-03", "397.89")
			newer := testWeek(t, "2024-06-10", "410.00")
			require.NoError(t, store.Save(ctx, older, false))
			require.NoError(t, store.Save(ctx, newer, false))

			replacement := testWeek(t, "2024-06-03", "400.00")
			require.NoError(t, store.Save(ctx, replacement, true))

			weeks, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, weeks, 2)
			assert.Equal(t, newer.ID, weeks[0].ID, "Overwrite does not move the week to the front")
			assert.Equal(t, replacement.ID, weeks[1].ID)
			assert.Equal(t, "400.00", weeks[1].NetPay.StringFixed(2))

			_, err = store.Get(ctx, older.ID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestWeekStore_OverwriteAtCapacity(t *testing.T) {
	ctx := context.Background()
	store := NewWeekStore(NewMemoryKV())
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < MaxWeeks; i++ {
		rec := testWeek(t, start.AddDate(0, 0, 7*i).Format(domain.DateLayout), "300.00")
		ids = append(ids, rec.ID)
		require.NoError(t, store.Save(ctx, rec, false))
	}

	oldest := testWeek(t, start.Format(domain.DateLayout), "333.00")
	require.NoError(t, store.Save(ctx, oldest, true))

	weeks, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, weeks, MaxWeeks, "Replacing a week never drops another")
	assert.Equal(t, ids[MaxWeeks-1], weeks[0].ID)
	assert.Equal(t, oldest.ID, weeks[MaxWeeks-1].ID)
}

func TestWeekStore_CapsAtMaxWeeks(t *testing.T) {
	ctx := context.Background()
	store := NewWeekStore(NewMemoryKV())
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < MaxWeeks+5; i++ {
		rec := testWeek(t, start.AddDate(0, 0, 7*i).Format(domain.DateLayout), fmt.Sprintf("%d.00", 300+i))
		ids = append(ids, rec.ID)
		require.NoError(t, store.Save(ctx, rec, false))
	}

	weeks, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, weeks, MaxWeeks)
	assert.Equal(t, ids[len(ids)-1], weeks[0].ID)
	assert.Equal(t, ids[5], weeks[MaxWeeks-1].ID, "Oldest saves are dropped")
}

func TestWeekStore_ListByPayday(t *testing.T) {
	ctx := context.Background()
	store := NewWeekStore(NewMemoryKV())

	// Saved out of order
	for _, start := range []string{"2024-06-10", "2024-05-27", "2024-06-17", "2024-06-03"} {
		require.NoError(t, store.Save(ctx, testWeek(t, start, "400.00"), false))
	}

	weeks, err := store.ListByPayday(ctx)
	require.NoError(t, err)
	require.Len(t, weeks, 4)

	var paydays []string
	for _, w := range weeks {
		paydays = append(paydays, w.Payday.Format(domain.DateLayout))
	}
	assert.Equal(t, []string{"2024-06-28", "2024-06-21", "2024-06-14", "2024-06-07"}, paydays)
}

func TestWeekStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewWeekStore(NewMemoryKV())

	a := testWeek(t, "2024-06-03", "400.00")
	b := testWeek(t, "2024-06-10", "400.00")
	require.NoError(t, store.Save(ctx, a, false))
	require.NoError(t, store.Save(ctx, b, false))

	require.NoError(t, store.Delete(ctx, a.ID))
	weeks, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, b.ID, weeks[0].ID)

	assert.ErrorIs(t, store.Delete(ctx, a.ID), ErrNotFound)
	_, err = store.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWeekStore_FormState(t *testing.T) {
	ctx := context.Background()

	for name, kv := range createTestKVs(t) {
		t.Run(name, func(t *testing.T) {
			store := NewWeekStore(kv)

			form, err := store.LoadFormState(ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.DefaultFormState(), form, "First load returns the defaults")

			saved := domain.FormState{PayRate: "12.5", HoursWorked: "4", TaxCode: "K500L", WeekStartDate: "2024-06-03"}
			require.NoError(t, store.SaveFormState(ctx, saved))

			form, err = store.LoadFormState(ctx)
			require.NoError(t, err)
			assert.Equal(t, saved, form)
		})
	}
}

func TestWeekStore_CorruptWeeks(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyWeeks, []byte(`{"not":"a list"}`)))

	_, err := NewWeekStore(kv).List(ctx)
	assert.ErrorContains(t, err, "failed to decode saved weeks")
}
