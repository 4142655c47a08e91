package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HotelService manages the hotel and room catalog. It never changes room
// availability.
type HotelService interface {
	CreateHotel(ctx context.Context, req *request.HotelRequest) (*response.HotelResponse, error)
	GetHotels(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.HotelResponse], error)
	GetHotelByID(ctx context.Context, hotelID string) (*response.HotelDetailResponse, error)
	UpdateHotel(ctx context.Context, hotelID string, req *request.HotelUpdateRequest) (*response.HotelResponse, error)
	DeleteHotel(ctx context.Context, hotelID string) error

	CreateRoom(ctx context.Context, hotelID string, req *request.RoomRequest) (*response.RoomResponse, error)
	GetRooms(ctx context.Context, hotelID string) (*response.RoomListResponse, error)
	GetRoom(ctx context.Context, hotelID, roomID string) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, hotelID, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error)
	DeleteRoom(ctx context.Context, hotelID, roomID string) error
}

type hotelService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewHotelService(repo *repository.Repository, log *zap.Logger) HotelService {
	return &hotelService{
		repo: repo,
		log:  log.With(zap.String("service", "hotel")),
	}
}

func (s *hotelService) CreateHotel(ctx context.Context, req *request.HotelRequest) (*response.HotelResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create hotel validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	now := time.Now()
	hotel := &entity.Hotel{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Phone:       req.Phone,
		Email:       req.Email,
		Amenities:   req.Amenities,
		Rating:      req.Rating,
		PriceMin:    req.PriceMin,
		PriceMax:    req.PriceMax,
	}

	if err := s.repo.Hotel.Create(ctx, hotel); err != nil {
		return nil, apperror.Internal("create hotel", err)
	}

	s.log.Info("Hotel created", zap.String("hotel_id", hotel.ID.String()), zap.String("name", hotel.Name))

	resp := response.HotelToResponse(hotel)
	return &resp, nil
}

func (s *hotelService) GetHotels(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.HotelResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = req.Limit()

	hotels, err := s.repo.Hotel.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("list hotels", err)
	}

	total, err := s.repo.Hotel.CountAll(ctx)
	if err != nil {
		return nil, apperror.Internal("count hotels", err)
	}
	if total == 0 {
		return nil, apperror.NotFound("There's no hotels data!")
	}

	data := make([]response.HotelResponse, len(hotels))
	for i, hotel := range hotels {
		data[i] = response.HotelToResponse(hotel)
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

func (s *hotelService) findHotel(ctx context.Context, hotelID string) (*entity.Hotel, error) {
	id, err := parseID(hotelID, "Invalid hotel id!")
	if err != nil {
		return nil, err
	}

	hotel, err := s.repo.Hotel.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find hotel", err)
	}
	if hotel == nil {
		return nil, apperror.NotFound("Hotel not found!")
	}
	return hotel, nil
}

func (s *hotelService) GetHotelByID(ctx context.Context, hotelID string) (*response.HotelDetailResponse, error) {
	hotel, err := s.findHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	total, available, err := s.repo.Room.CountByHotelID(ctx, hotel.ID)
	if err != nil {
		return nil, apperror.Internal("count rooms", err)
	}

	return &response.HotelDetailResponse{
		HotelResponse:  response.HotelToResponse(hotel),
		TotalRooms:     total,
		AvailableRooms: available,
	}, nil
}

func (s *hotelService) UpdateHotel(ctx context.Context, hotelID string, req *request.HotelUpdateRequest) (*response.HotelResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	hotel, err := s.findHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		hotel.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		hotel.Description = *req.Description
	}
	if req.Address != nil {
		hotel.Address = *req.Address
	}
	if req.City != nil {
		hotel.City = *req.City
	}
	if req.State != nil {
		hotel.State = *req.State
	}
	if req.Country != nil {
		hotel.Country = *req.Country
	}
	if req.Phone != nil {
		hotel.Phone = *req.Phone
	}
	if req.Email != nil {
		hotel.Email = *req.Email
	}
	if req.Amenities != nil {
		hotel.Amenities = *req.Amenities
	}
	if req.Rating != nil {
		hotel.Rating = *req.Rating
	}
	if req.PriceMin != nil {
		hotel.PriceMin = *req.PriceMin
	}
	if req.PriceMax != nil {
		hotel.PriceMax = *req.PriceMax
	}
	if hotel.PriceMax < hotel.PriceMin {
		return nil, apperror.InvalidInput("validation failed: PriceMax: Must be at least %v", hotel.PriceMin)
	}
	hotel.UpdatedAt = time.Now()

	err = s.repo.Hotel.Update(ctx, hotel)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("Hotel not found!")
	}
	if err != nil {
		return nil, apperror.Internal("update hotel", err)
	}

	s.log.Info("Hotel updated", zap.String("hotel_id", hotel.ID.String()))

	resp := response.HotelToResponse(hotel)
	return &resp, nil
}

// DeleteHotel removes the hotel and its rooms unless a room is booked.
func (s *hotelService) DeleteHotel(ctx context.Context, hotelID string) error {
	hotel, err := s.findHotel(ctx, hotelID)
	if err != nil {
		return err
	}

	err = s.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// Rooms first: their row locks hold off a concurrent Reserve.
		roomsDeleted, err := s.repo.Room.DeleteByHotelID(ctx, hotel.ID)
		if err != nil {
			return err
		}
		if !roomsDeleted {
			return apperror.Conflict("Hotel has active bookings and cannot be deleted!")
		}

		deleted, err := s.repo.Hotel.Delete(ctx, hotel.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperror.Conflict("Hotel has active bookings and cannot be deleted!")
		}
		return nil
	})
	if err != nil {
		return passThrough("delete hotel", err)
	}

	s.log.Info("Hotel deleted", zap.String("hotel_id", hotel.ID.String()))
	return nil
}

func (s *hotelService) CreateRoom(ctx context.Context, hotelID string, req *request.RoomRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create room validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	hotel, err := s.findHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNumberFree(ctx, hotel.ID, req.Number, uuid.Nil); err != nil {
		return nil, err
	}

	now := time.Now()
	room := &entity.Room{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		HotelID:      hotel.ID,
		Number:       req.Number,
		Type:         entity.RoomType(req.Type),
		Price:        req.Price,
		Amenities:    req.Amenities,
		Availability: true,
	}

	err = s.repo.Room.Create(ctx, room)
	if errors.Is(err, repository.ErrDuplicateRoomNumber) {
		return nil, s.duplicateNumber(ctx, hotel.ID, room.Number)
	}
	if err != nil {
		return nil, apperror.Internal("create room", err)
	}

	s.log.Info("Room created",
		zap.String("hotel_id", hotel.ID.String()),
		zap.String("room_id", room.ID.String()),
		zap.Int("number", room.Number))

	resp := response.RoomToResponse(room)
	return &resp, nil
}

// ensureNumberFree rejects a room number already used by another room.
func (s *hotelService) ensureNumberFree(ctx context.Context, hotelID uuid.UUID, number int, self uuid.UUID) error {
	existing, err := s.repo.Room.FindByHotelAndNumber(ctx, hotelID, number)
	if err != nil {
		return apperror.Internal("check room number", err)
	}
	if existing != nil && existing.ID != self {
		return s.duplicateNumber(ctx, hotelID, number)
	}
	return nil
}

func (s *hotelService) duplicateNumber(ctx context.Context, hotelID uuid.UUID, number int) error {
	latest, err := s.repo.Room.MaxNumber(ctx, hotelID)
	if err != nil {
		return apperror.Internal("suggest room number", err)
	}
	return apperror.InvalidInput(
		"Room number %d already exist at this hotel. You can use room number %d instead.",
		number, latest+1)
}

func (s *hotelService) GetRooms(ctx context.Context, hotelID string) (*response.RoomListResponse, error) {
	hotel, err := s.findHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.repo.Room.FindByHotelID(ctx, hotel.ID)
	if err != nil {
		return nil, apperror.Internal("list rooms", err)
	}
	if len(rooms) == 0 {
		return nil, apperror.NotFound("No data.")
	}

	resp := &response.RoomListResponse{
		HotelID: hotel.ID.String(),
		Total:   len(rooms),
		Rooms:   make([]response.RoomResponse, len(rooms)),
	}
	for i, room := range rooms {
		if room.Availability {
			resp.Available++
		}
		resp.Rooms[i] = response.RoomToResponse(room)
	}

	return resp, nil
}

func (s *hotelService) findRoom(ctx context.Context, hotelID, roomID string) (*entity.Room, error) {
	hotel, err := s.findHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	id, err := parseID(roomID, "Invalid room id!")
	if err != nil {
		return nil, err
	}

	room, err := s.repo.Room.FindByHotelAndID(ctx, hotel.ID, id)
	if err != nil {
		return nil, apperror.Internal("find room", err)
	}
	if room == nil {
		return nil, apperror.NotFound("Room not found!")
	}
	return room, nil
}

func (s *hotelService) GetRoom(ctx context.Context, hotelID, roomID string) (*response.RoomResponse, error) {
	room, err := s.findRoom(ctx, hotelID, roomID)
	if err != nil {
		return nil, err
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *hotelService) UpdateRoom(ctx context.Context, hotelID, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	room, err := s.findRoom(ctx, hotelID, roomID)
	if err != nil {
		return nil, err
	}

	if req.Number != nil && *req.Number != room.Number {
		if err := s.ensureNumberFree(ctx, room.HotelID, *req.Number, room.ID); err != nil {
			return nil, err
		}
		room.Number = *req.Number
	}
	if req.Type != nil {
		room.Type = entity.RoomType(*req.Type)
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Amenities != nil {
		room.Amenities = *req.Amenities
	}
	room.UpdatedAt = time.Now()

	err = s.repo.Room.Update(ctx, room)
	switch {
	case errors.Is(err, repository.ErrDuplicateRoomNumber):
		return nil, s.duplicateNumber(ctx, room.HotelID, room.Number)
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperror.NotFound("Room not found!")
	case err != nil:
		return nil, apperror.Internal("update room", err)
	}

	s.log.Info("Room updated", zap.String("room_id", room.ID.String()))

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *hotelService) DeleteRoom(ctx context.Context, hotelID, roomID string) error {
	room, err := s.findRoom(ctx, hotelID, roomID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Room.Delete(ctx, room.HotelID, room.ID)
	if err != nil {
		return apperror.Internal("delete room", err)
	}
	if !deleted {
		return apperror.Conflict("Room is booked and cannot be deleted!")
	}

	s.log.Info("Room deleted", zap.String("room_id", room.ID.String()))
	return nil
}
