package entity

type Hotel struct {
	Base
	Name        string   `db:"name"`
	Description string   `db:"description"`
	Address     string   `db:"address"`
	City        string   `db:"city"`
	State       string   `db:"state"`
	Country     string   `db:"country"`
	Phone       string   `db:"phone"`
	Email       string   `db:"email"`
	Amenities   []string `db:"amenities"`
	Rating      float64  `db:"rating"`
	PriceMin    float64  `db:"price_min"`
	PriceMax    float64  `db:"price_max"`
}
