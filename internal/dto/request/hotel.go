package request

type HotelRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=150"`
	Description string   `json:"description" validate:"max=2000"`
	Address     string   `json:"address" validate:"required,max=255"`
	City        string   `json:"city" validate:"required,max=100"`
	State       string   `json:"state" validate:"max=100"`
	Country     string   `json:"country" validate:"required,max=100"`
	Phone       string   `json:"phone" validate:"max=30"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Amenities   []string `json:"amenities" validate:"dive,min=1,max=50"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	PriceMin    float64  `json:"price_min" validate:"gte=0"`
	PriceMax    float64  `json:"price_max" validate:"gte=0,gtefield=PriceMin"`
}

type HotelUpdateRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Address     *string   `json:"address,omitempty" validate:"omitempty,min=1,max=255"`
	City        *string   `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	State       *string   `json:"state,omitempty" validate:"omitempty,max=100"`
	Country     *string   `json:"country,omitempty" validate:"omitempty,min=1,max=100"`
	Phone       *string   `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email       *string   `json:"email,omitempty" validate:"omitempty,email"`
	Amenities   *[]string `json:"amenities,omitempty"`
	Rating      *float64  `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	PriceMin    *float64  `json:"price_min,omitempty" validate:"omitempty,gte=0"`
	PriceMax    *float64  `json:"price_max,omitempty" validate:"omitempty,gte=0"`
}

type RoomRequest struct {
	Number    int      `json:"number" validate:"required,gt=0"`
	Type      string   `json:"type" validate:"required,oneof=single double suite family"`
	Price     float64  `json:"price" validate:"required,gt=0"`
	Amenities []string `json:"amenities" validate:"dive,min=1,max=50"`
}

// RoomUpdateRequest has no availability field; bookings own it.
type RoomUpdateRequest struct {
	Number    *int      `json:"number,omitempty" validate:"omitempty,gt=0"`
	Type      *string   `json:"type,omitempty" validate:"omitempty,oneof=single double suite family"`
	Price     *float64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Amenities *[]string `json:"amenities,omitempty"`
}
