package account

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("zoom account not found")
	ErrEmptyName = errors.New("name cannot be empty")
)

// Account is one shared Zoom credential set from the pool. Inactive accounts
// are excluded from allocation but never deleted, so historical bookings keep
// their reference.
type Account struct {
	ID        int64
	Name      string
	Login     string
	Secret    string
	IsActive  bool
	CreatedAt time.Time
}

// SeedCount is the size of the pool created on first startup.
const SeedCount = 20
