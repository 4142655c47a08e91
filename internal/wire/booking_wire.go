package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireBooking mounts the booking routes. Every route needs a session;
// ownership is checked by the booking service, not here.
func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	auth middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/booking", func(r chi.Router) {
		r.Use(middleware.AuthSession(auth, log))

		r.Get("/history", bookingHandler.GetBookings)
		r.Get("/history/{id}", bookingHandler.GetBookingByID)
		r.Delete("/history/{id}", bookingHandler.DeleteBooking)
		r.Post("/hotels/{hotelId}/rooms/{roomId}", bookingHandler.CreateBooking)
		r.Put("/order/{id}", bookingHandler.CancelBooking)
	})
}
