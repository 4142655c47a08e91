package repository

import (
	"errors"

	"hotel-booking/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is returned by writes whose target row does not exist.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	Tx      database.Transactor
	User    UserRepository
	Session SessionRepository
	Hotel   HotelRepository
	Room    RoomRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:      database.NewTransactor(db, log),
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Hotel:   NewHotelRepository(db, log),
		Room:    NewRoomRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
