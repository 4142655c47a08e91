package adaptor

import (
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HotelHandler struct {
	service usecase.HotelService
	log     *zap.Logger
}

func NewHotelHandler(service usecase.HotelService, log *zap.Logger) *HotelHandler {
	return &HotelHandler{
		service: service,
		log:     log.With(zap.String("handler", "hotel")),
	}
}

// GetHotels handles GET /api/v1/hotels
func (h *HotelHandler) GetHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.service.GetHotels(r.Context(), paginationFromQuery(r))
	if err != nil {
		writeServiceError(w, h.log, err, "get hotels")
		return
	}

	utils.ResponseSuccess(w, "success", hotels)
}

// GetHotelByID handles GET /api/v1/hotels/{id}
func (h *HotelHandler) GetHotelByID(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.service.GetHotelByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get hotel")
		return
	}

	utils.ResponseSuccess(w, "success", hotel)
}

// CreateHotel handles POST /api/v1/hotels (admin only)
func (h *HotelHandler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	var req request.HotelRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hotel, err := h.service.CreateHotel(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create hotel")
		return
	}

	utils.ResponseCreated(w, "Hotel created successfully", hotel)
}

// UpdateHotel handles PUT /api/v1/hotels/{id} (admin only)
func (h *HotelHandler) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	var req request.HotelUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hotel, err := h.service.UpdateHotel(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update hotel")
		return
	}

	utils.ResponseSuccess(w, "Hotel updated successfully", hotel)
}

// DeleteHotel handles DELETE /api/v1/hotels/{id} (admin only)
func (h *HotelHandler) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHotel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete hotel")
		return
	}

	utils.ResponseSuccess(w, "Hotel deleted successfully", nil)
}

// GetRooms handles GET /api/v1/hotels/{id}/rooms
func (h *HotelHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.GetRooms(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// GetRoom handles GET /api/v1/hotels/{id}/rooms/{roomId}
func (h *HotelHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetRoom(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "roomId"))
	if err != nil {
		writeServiceError(w, h.log, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// CreateRoom handles POST /api/v1/hotels/{id}/rooms (admin only)
func (h *HotelHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	room, err := h.service.CreateRoom(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create room")
		return
	}

	utils.ResponseCreated(w, "Room created successfully", room)
}

// UpdateRoom handles PUT /api/v1/hotels/{id}/rooms/{roomId} (admin only)
func (h *HotelHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "roomId"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "Room updated successfully", room)
}

// DeleteRoom handles DELETE /api/v1/hotels/{id}/rooms/{roomId} (admin only)
func (h *HotelHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRoom(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "roomId")); err != nil {
		writeServiceError(w, h.log, err, "delete room")
		return
	}

	utils.ResponseSuccess(w, "Room deleted successfully", nil)
}
