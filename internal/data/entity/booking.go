package entity

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusExpired   BookingStatus = "expired"
)

// IsTerminal reports whether no further transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusExpired
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPaypal     PaymentMethod = "paypal"
	PaymentCash       PaymentMethod = "cash"
)

type Booking struct {
	BaseNoDelete
	UserID        uuid.UUID     `db:"user_id"`
	HotelID       uuid.UUID     `db:"hotel_id"`
	RoomID        uuid.UUID     `db:"room_id"`
	CheckInDate   time.Time     `db:"check_in_date"`
	CheckOutDate  time.Time     `db:"check_out_date"`
	Nights        int           `db:"nights"`
	Amount        float64       `db:"amount"`
	PaymentMethod PaymentMethod `db:"payment_method"`
	Status        BookingStatus `db:"status"`
}

// BookingDetail is a booking joined with the names shown in history views.
type BookingDetail struct {
	Booking
	UserName   string `db:"user_name"`
	HotelName  string `db:"hotel_name"`
	RoomNumber int    `db:"room_number"`
}

var ErrInvalidStay = errors.New("check-out date must be after check-in date")

const day = 24 * time.Hour

// Nights counts whole days between two civil dates.
func Nights(checkIn, checkOut time.Time) (int, error) {
	nights := int(math.Round(float64(checkOut.Sub(checkIn)) / float64(day)))
	if nights < 1 {
		return 0, ErrInvalidStay
	}
	return nights, nil
}
