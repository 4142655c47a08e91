package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireHotel mounts the catalog: reads are public, writes are admin only.
func wireHotel(
	r chi.Router,
	hotelHandler *adaptor.HotelHandler,
	auth middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/hotels", func(r chi.Router) {
		r.Get("/", hotelHandler.GetHotels)
		r.Get("/{id}", hotelHandler.GetHotelByID)
		r.Get("/{id}/rooms", hotelHandler.GetRooms)
		r.Get("/{id}/rooms/{roomId}", hotelHandler.GetRoom)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(auth, log))
			r.Use(middleware.Admin(log))

			r.Post("/", hotelHandler.CreateHotel)
			r.Put("/{id}", hotelHandler.UpdateHotel)
			r.Delete("/{id}", hotelHandler.DeleteHotel)
			r.Post("/{id}/rooms", hotelHandler.CreateRoom)
			r.Put("/{id}/rooms/{roomId}", hotelHandler.UpdateRoom)
			r.Delete("/{id}/rooms/{roomId}", hotelHandler.DeleteRoom)
		})
	})
}
