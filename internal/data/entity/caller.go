package entity

import "github.com/google/uuid"

// Caller is the authenticated identity a request acts as.
type Caller struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// CanAccess is the single ownership rule for bookings: admins see everything,
// everybody else only their own.
func (c Caller) CanAccess(b *Booking) bool {
	if b == nil {
		return false
	}
	return c.IsAdmin || (c.UserID != uuid.Nil && b.UserID == c.UserID)
}
