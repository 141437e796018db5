package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetroom-labs/zoom-booking-backend/internal/account"
)

func poolOf(ids ...int64) []*account.Account {
	accounts := make([]*account.Account, len(ids))
	for i, id := range ids {
		accounts[i] = &account.Account{ID: id, IsActive: true}
	}
	return accounts
}

func confirmedOn(accountID int64, startMinute, endMinute int) *Booking {
	id := accountID
	return &Booking{
		AccountID:   &id,
		StartMinute: startMinute,
		EndMinute:   endMinute,
		Status:      StatusConfirmed,
	}
}

func TestPickEmptyDay(t *testing.T) {
	got := Pick(poolOf(1, 2, 3), nil, 540, 600)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID, "lowest id wins on an empty day")
}

func TestPickPrefersUntouchedAccount(t *testing.T) {
	// Account 1 has a morning booking. A non-conflicting afternoon request
	// must still go to account 2: freshness outranks conflict avoidance.
	day := []*Booking{confirmedOn(1, 540, 600)}

	got := Pick(poolOf(1, 2, 3), day, 900, 960)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
}

func TestPickReuseRequiresBuffer(t *testing.T) {
	// Single-account pool with a confirmed 09:00-09:30 booking. A request at
	// 10:00-11:00 falls inside the widened 08:00-10:30 window and must be
	// refused.
	day := []*Booking{confirmedOn(1, 540, 570)}

	assert.Nil(t, Pick(poolOf(1), day, 600, 660))

	// 10:30-11:30 clears the buffer exactly.
	got := Pick(poolOf(1), day, 630, 690)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}

func TestPickIgnoresNonConfirmedBookings(t *testing.T) {
	cancelled := confirmedOn(1, 540, 600)
	cancelled.Status = StatusCancelled

	got := Pick(poolOf(1), []*Booking{cancelled}, 540, 600)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}

func TestPickDeterministicOrdering(t *testing.T) {
	day := []*Booking{confirmedOn(1, 540, 600)}

	for range 10 {
		got := Pick(poolOf(1, 2, 3, 4), day, 540, 600)
		require.NotNil(t, got)
		assert.Equal(t, int64(2), got.ID)
	}
}

// Walks the scenario of a day filling up on a three-account pool.
func TestPickFillsPoolThenRefuses(t *testing.T) {
	accounts := poolOf(1, 2, 3)
	var day []*Booking

	// Three overlapping requests each land on a fresh account.
	first := Pick(accounts, day, 540, 600)
	require.NotNil(t, first)
	day = append(day, confirmedOn(first.ID, 540, 600))

	second := Pick(accounts, day, 570, 630)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
	day = append(day, confirmedOn(second.ID, 570, 630))

	third := Pick(accounts, day, 555, 615)
	require.NotNil(t, third)
	assert.NotEqual(t, first.ID, third.ID)
	assert.NotEqual(t, second.ID, third.ID)
	day = append(day, confirmedOn(third.ID, 555, 615))

	// Fourth conflicting request finds no capacity, even with the buffer.
	assert.Nil(t, Pick(accounts, day, 560, 620))

	// A request far enough away clears phase 2 on the first account.
	late := Pick(accounts, day, 720, 780)
	require.NotNil(t, late)
	assert.Equal(t, int64(1), late.ID)
}
