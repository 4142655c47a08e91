package response

import (
	"time"

	"hotel-booking/internal/data/entity"
)

type HotelResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state,omitempty"`
	Country     string    `json:"country"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Amenities   []string  `json:"amenities"`
	Rating      float64   `json:"rating"`
	PriceMin    float64   `json:"price_min"`
	PriceMax    float64   `json:"price_max"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type HotelDetailResponse struct {
	HotelResponse
	TotalRooms     int64 `json:"total_rooms"`
	AvailableRooms int64 `json:"available_rooms"`
}

type RoomResponse struct {
	ID           string    `json:"id"`
	HotelID      string    `json:"hotel_id"`
	Number       int       `json:"number"`
	Type         string    `json:"type"`
	Price        float64   `json:"price"`
	Amenities    []string  `json:"amenities"`
	Availability bool      `json:"availability"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RoomListResponse struct {
	HotelID   string         `json:"hotel_id"`
	Total     int            `json:"total"`
	Available int            `json:"available"`
	Rooms     []RoomResponse `json:"rooms"`
}

func HotelToResponse(hotel *entity.Hotel) HotelResponse {
	amenities := hotel.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return HotelResponse{
		ID:          hotel.ID.String(),
		Name:        hotel.Name,
		Description: hotel.Description,
		Address:     hotel.Address,
		City:        hotel.City,
		State:       hotel.State,
		Country:     hotel.Country,
		Phone:       hotel.Phone,
		Email:       hotel.Email,
		Amenities:   amenities,
		Rating:      hotel.Rating,
		PriceMin:    hotel.PriceMin,
		PriceMax:    hotel.PriceMax,
		CreatedAt:   hotel.CreatedAt,
		UpdatedAt:   hotel.UpdatedAt,
	}
}

func RoomToResponse(room *entity.Room) RoomResponse {
	amenities := room.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return RoomResponse{
		ID:           room.ID.String(),
		HotelID:      room.HotelID.String(),
		Number:       room.Number,
		Type:         string(room.Type),
		Price:        room.Price,
		Amenities:    amenities,
		Availability: room.Availability,
		CreatedAt:    room.CreatedAt,
		UpdatedAt:    room.UpdatedAt,
	}
}
