package entity

import "github.com/google/uuid"

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomSuite  RoomType = "suite"
	RoomFamily RoomType = "family"
)

// Room is one bookable unit of a hotel. Availability is true exactly when no
// confirmed booking references the room and is only changed by booking flows.
type Room struct {
	Base
	HotelID      uuid.UUID `db:"hotel_id"`
	Number       int       `db:"number"`
	Type         RoomType  `db:"type"`
	Price        float64   `db:"price"`
	Amenities    []string  `db:"amenities"`
	Availability bool      `db:"availability"`
}
