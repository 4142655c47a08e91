package request

type PaymentRequest struct {
	Method string `json:"method" validate:"required,oneof=credit_card debit_card paypal cash"`
}

type CreateBookingRequest struct {
	CheckInDate  string         `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string         `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Payment      PaymentRequest `json:"payment"`
}
