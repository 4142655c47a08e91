package response

import (
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"
)

type PaymentResponse struct {
	Method entity.PaymentMethod `json:"method"`
	Amount float64              `json:"amount"`
}

type BookingResponse struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	HotelID      string               `json:"hotel_id"`
	RoomID       string               `json:"room_id"`
	CheckInDate  string               `json:"check_in_date"`
	CheckOutDate string               `json:"check_out_date"`
	Nights       int                  `json:"nights"`
	Payment      PaymentResponse      `json:"payment"`
	Status       entity.BookingStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`

	UserName   string `json:"user_name,omitempty"`
	HotelName  string `json:"hotel_name,omitempty"`
	RoomNumber int    `json:"room_number,omitempty"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           booking.ID.String(),
		UserID:       booking.UserID.String(),
		HotelID:      booking.HotelID.String(),
		RoomID:       booking.RoomID.String(),
		CheckInDate:  utils.FormatDate(booking.CheckInDate),
		CheckOutDate: utils.FormatDate(booking.CheckOutDate),
		Nights:       booking.Nights,
		Payment: PaymentResponse{
			Method: booking.PaymentMethod,
			Amount: booking.Amount,
		},
		Status:    booking.Status,
		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
	}
}

func BookingDetailToResponse(detail *entity.BookingDetail) BookingResponse {
	resp := BookingToResponse(&detail.Booking)
	resp.UserName = detail.UserName
	resp.HotelName = detail.HotelName
	resp.RoomNumber = detail.RoomNumber
	return resp
}
