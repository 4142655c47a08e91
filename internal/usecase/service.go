package usecase

import (
	"errors"
	"time"

	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Hotel   HotelService
	Booking BookingService
	Expiry  ExpiryService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo, log),
		Hotel:   NewHotelService(repo, log),
		Booking: NewBookingService(repo, log),
		Expiry:  NewExpiryService(repo, time.Now, log),
	}
}

func parseID(value, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperror.InvalidInput("%s", message)
	}
	return id, nil
}

func validationError(errs map[string]string) error {
	return apperror.InvalidInput("validation failed: %s", utils.FormatValidationErrors(errs))
}

// passThrough keeps classified errors and marks everything else internal.
func passThrough(message string, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal(message, err)
}
