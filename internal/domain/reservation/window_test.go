package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowPolicy_CheckWindow(t *testing.T) {
	policy := DefaultWindowPolicy()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	stay := func(in, out time.Time) Request {
		return Request{GuestID: "g", UnitID: "u", CheckIn: in, CheckOut: out, Guests: 1}
	}
	date := func(y, m, d int) time.Time {
		return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	}

	testCases := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid one-week stay", stay(date(2026, 2, 1), date(2026, 2, 8)), false},
		{"one night minimum", stay(date(2026, 1, 2), date(2026, 1, 3)), false},
		{"same-day check-in", stay(date(2026, 1, 1), date(2026, 1, 2)), false},
		{"thirty nights maximum", stay(date(2026, 2, 1), date(2026, 3, 3)), false},
		{"check-out equals check-in", stay(date(2026, 2, 1), date(2026, 2, 1)), true},
		{"check-out before check-in", stay(date(2026, 2, 8), date(2026, 2, 1)), true},
		{"check-in in the past", stay(date(2025, 12, 30), date(2026, 1, 2)), true},
		{"thirty-one nights", stay(date(2026, 2, 1), date(2026, 3, 4)), true},
		{"beyond booking horizon", stay(date(2027, 1, 5), date(2027, 1, 10)), true},
		{"at booking horizon", stay(date(2027, 1, 1), date(2027, 1, 5)), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.CheckWindow(tc.req, now)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidWindow)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWindowPolicy_Validate(t *testing.T) {
	assert.NoError(t, DefaultWindowPolicy().Validate())
	assert.Error(t, WindowPolicy{MinNights: 0, MaxNights: 30, AdvanceDays: 365}.Validate())
	assert.Error(t, WindowPolicy{MinNights: 5, MaxNights: 2, AdvanceDays: 365}.Validate())
	assert.Error(t, WindowPolicy{MinNights: 1, MaxNights: 30, AdvanceDays: 0}.Validate())
}

func TestStatus_Transitions(t *testing.T) {
	testCases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
