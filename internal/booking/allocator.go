package booking

import (
	"github.com/meetroom-labs/zoom-booking-backend/internal/account"
	"github.com/meetroom-labs/zoom-booking-backend/internal/pkg/timewindow"
)

// ReuseBufferMinutes is the slack required before and after any existing
// booking when an account has to be reused on the same day. It leaves an hour
// for credential rotation between meetings.
const ReuseBufferMinutes = 60

// Pick selects a Zoom account for the requested window, or nil when the pool
// has no capacity.
//
// The policy has two phases. Phase 1 prefers accounts with no confirmed
// booking at all that day, in ascending id order: a fresh account beats
// reusing a busy one even when the reuse would not conflict, which keeps
// credential hand-offs per account per day to a minimum. Phase 2 only runs
// when every active account is already used that day; it returns the first
// account whose bookings all clear the requested window with
// ReuseBufferMinutes of slack on both sides.
//
// accounts must be ordered ascending by id and dayBookings must be the
// confirmed bookings for the requested date. Pick is pure; the caller is
// responsible for running it inside the allocation critical section.
func Pick(accounts []*account.Account, dayBookings []*Booking, startMinute, endMinute int) *account.Account {
	used := make(map[int64][]*Booking)
	for _, b := range dayBookings {
		if b.Status != StatusConfirmed || b.AccountID == nil {
			continue
		}
		used[*b.AccountID] = append(used[*b.AccountID], b)
	}

	// Phase 1: an account nobody touched today.
	for _, a := range accounts {
		if len(used[a.ID]) == 0 {
			return a
		}
	}

	// Phase 2: reuse the first account whose day leaves room, buffer included.
	for _, a := range accounts {
		conflict := false
		for _, b := range used[a.ID] {
			if timewindow.Overlaps(startMinute, endMinute, b.StartMinute, b.EndMinute, ReuseBufferMinutes) {
				conflict = true
				break
			}
		}
		if !conflict {
			return a
		}
	}

	return nil
}
