package usecase

import (
	"context"
	"errors"
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

const (
	msgRoomUnavailable     = "This room is not available!"
	msgOrderNotFound       = "Order not found!"
	msgTransactionNotFound = "Transaction not found!"
)

// BookingService reserves rooms and moves bookings through their lifecycle.
// Single-booking operations authorize through entity.Caller.CanAccess; listings
// are scoped by owner in the query.
type BookingService interface {
	CreateBooking(ctx context.Context, caller entity.Caller, hotelID, roomID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookings(ctx context.Context, caller entity.Caller, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, caller entity.Caller, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, caller entity.Caller, bookingID string) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, caller entity.Caller, bookingID string) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

// CreateBooking reserves the room and records a confirmed booking in one
// transaction. Of two concurrent requests for one room only the first
// reservation succeeds; the other gets a Conflict.
func (s *bookingService) CreateBooking(ctx context.Context, caller entity.Caller, hotelID, roomID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	hotelUUID, err := parseID(hotelID, "Invalid hotel id!")
	if err != nil {
		return nil, err
	}
	roomUUID, err := parseID(roomID, "Invalid room id!")
	if err != nil {
		return nil, err
	}

	checkIn, err := utils.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, apperror.InvalidInput("Invalid check-in date!")
	}
	checkOut, err := utils.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, apperror.InvalidInput("Invalid check-out date!")
	}
	nights, err := entity.Nights(checkIn, checkOut)
	if err != nil {
		return nil, apperror.InvalidInput("Check-out date must be after check-in date!")
	}

	hotel, err := s.repo.Hotel.FindByID(ctx, hotelUUID)
	if err != nil {
		return nil, apperror.Internal("find hotel", err)
	}
	if hotel == nil {
		return nil, apperror.NotFound("Hotel not found!")
	}

	room, err := s.repo.Room.FindByHotelAndID(ctx, hotelUUID, roomUUID)
	if err != nil {
		return nil, apperror.Internal("find room", err)
	}
	if room == nil {
		return nil, apperror.NotFound("Room not found!")
	}
	if !room.Availability {
		return nil, apperror.Conflict(msgRoomUnavailable)
	}

	now := time.Now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:        caller.UserID,
		HotelID:       hotelUUID,
		RoomID:        roomUUID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Nights:        nights,
		PaymentMethod: entity.PaymentMethod(req.Payment.Method),
		Status:        entity.BookingStatusConfirmed,
	}

	err = s.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		reserved, err := s.repo.Room.Reserve(ctx, hotelUUID, roomUUID)
		if err != nil {
			return err
		}
		if reserved == nil {
			return apperror.Conflict(msgRoomUnavailable)
		}

		// Price as of the reservation, not the earlier read.
		booking.Amount = reserved.Price * float64(nights)

		if err := s.repo.Booking.Create(ctx, booking); err != nil {
			if errors.Is(err, repository.ErrRoomAlreadyBooked) {
				return apperror.Conflict(msgRoomUnavailable)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if apperror.Is(err, apperror.KindConflict) {
			s.log.Info("Room reservation lost",
				zap.String("room_id", roomUUID.String()),
				zap.String("user_id", caller.UserID.String()))
		}
		return nil, passThrough("create booking", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", caller.UserID.String()),
		zap.String("room_id", roomUUID.String()),
		zap.Int("nights", nights),
		zap.Float64("amount", booking.Amount))

	resp := response.BookingToResponse(booking)
	resp.HotelName = hotel.Name
	resp.RoomNumber = room.Number
	return &resp, nil
}

// GetBookings lists the caller's bookings, or every booking for an admin.
func (s *bookingService) GetBookings(ctx context.Context, caller entity.Caller, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = req.Limit()

	var filter repository.BookingFilter
	if !caller.IsAdmin {
		userID := caller.UserID
		filter.UserID = &userID
	}

	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("count bookings", err)
	}
	if total == 0 {
		return nil, apperror.NotFound("No transaction data.")
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("list bookings", err)
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, detail := range bookings {
		data = append(data, response.BookingDetailToResponse(detail))
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, caller entity.Caller, bookingID string) (*response.BookingResponse, error) {
	id, err := parseID(bookingID, "Invalid transaction id!")
	if err != nil {
		return nil, err
	}

	detail, err := s.repo.Booking.FindDetailByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find booking", err)
	}
	if detail == nil || !caller.CanAccess(&detail.Booking) {
		return nil, apperror.NotFound(msgTransactionNotFound)
	}

	resp := response.BookingDetailToResponse(detail)
	return &resp, nil
}

// CancelBooking cancels a confirmed booking and frees its room atomically.
func (s *bookingService) CancelBooking(ctx context.Context, caller entity.Caller, bookingID string) (*response.BookingResponse, error) {
	id, err := parseID(bookingID, "Invalid order id!")
	if err != nil {
		return nil, err
	}

	var booking *entity.Booking
	err = s.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		booking, err = s.repo.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !caller.CanAccess(booking) {
			return apperror.NotFound(msgOrderNotFound)
		}

		switch booking.Status {
		case entity.BookingStatusCancelled:
			return apperror.Conflict("Already cancelled.")
		case entity.BookingStatusExpired:
			return apperror.Conflict("Already expired.")
		}

		changed, err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusConfirmed, entity.BookingStatusCancelled)
		if err != nil {
			return err
		}
		if !changed {
			return apperror.Conflict("Booking is no longer active.")
		}

		if _, err := s.repo.Room.Release(ctx, booking.RoomID); err != nil {
			return err
		}
		booking.Status = entity.BookingStatusCancelled
		return nil
	})
	if err != nil {
		return nil, passThrough("cancel booking", err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", id.String()),
		zap.String("room_id", booking.RoomID.String()),
		zap.String("by", caller.UserID.String()))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// DeleteBooking removes a cancelled or expired booking.
func (s *bookingService) DeleteBooking(ctx context.Context, caller entity.Caller, bookingID string) error {
	id, err := parseID(bookingID, "Invalid transaction id!")
	if err != nil {
		return err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal("find booking", err)
	}
	if !caller.CanAccess(booking) || !booking.Status.IsTerminal() {
		return apperror.NotFound(msgTransactionNotFound)
	}

	deleted, err := s.repo.Booking.DeleteTerminal(ctx, id)
	if err != nil {
		return apperror.Internal("delete booking", err)
	}
	if !deleted {
		return apperror.NotFound(msgTransactionNotFound)
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", id.String()),
		zap.String("by", caller.UserID.String()))
	return nil
}
