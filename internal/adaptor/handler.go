package adaptor

import (
	"encoding/json"
	"net/http"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Hotel   *HotelHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Hotel:   NewHotelHandler(service.Hotel, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// writeServiceError maps an error kind to its status code. Internal details
// are logged, never returned.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	kind := apperror.KindOf(err)
	message := apperror.MessageOf(err)

	if kind == apperror.KindInternal {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
	} else {
		log.Warn(operation+" failed",
			zap.String("kind", string(kind)),
			zap.String("message", message))
	}

	utils.ResponseError(w, apperror.HTTPStatus(kind), message, nil)
}

// decodeAndValidate reads a JSON body into dst and runs its struct tags. It
// writes the 400 response itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// callerFromRequest reads the identity AuthSession stored in the context.
func callerFromRequest(r *http.Request) (entity.Caller, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return entity.Caller{}, false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return entity.Caller{
		UserID:  userID,
		IsAdmin: entity.UserRole(role) == entity.RoleAdmin,
	}, true
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ClampPerPage(utils.ParseInt(query.Get("per_page"), utils.DefaultPerPage)),
	}
}
