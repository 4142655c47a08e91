package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	userHandler *adaptor.UserHandler,
	auth middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.GuestOnly(auth, log))
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(auth, log))
			r.Post("/logout", authHandler.Logout)
			r.Get("/profile", userHandler.GetProfile)
			r.Put("/{id}", userHandler.UpdateUser)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Admin(log))
				r.Get("/", userHandler.GetAllUsers)
				r.Get("/{id}", userHandler.GetUserByID)
				r.Delete("/{id}", userHandler.DeleteUser)
			})
		})
	})
}
