package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Partial unique index allowing one confirmed booking per room.
const activeBookingConstraint = "bookings_room_confirmed_key"

var ErrRoomAlreadyBooked = errors.New("room already has a confirmed booking")

// BookingFilter narrows listings. A nil UserID means every user.
type BookingFilter struct {
	UserID *uuid.UUID
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error)
	FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.BookingDetail, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)

	// UpdateStatus moves a booking from one status to another and reports
	// false when the booking was not in the expected status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error)
	// DeleteTerminal removes a cancelled or expired booking.
	DeleteTerminal(ctx context.Context, id uuid.UUID) (bool, error)
	// FindOverdue lists non-terminal bookings whose check-out is before now.
	FindOverdue(ctx context.Context, now time.Time, limit int) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.user_id, b.hotel_id, b.room_id, b.check_in_date, b.check_out_date,
		       b.nights, b.amount, b.payment_method, b.status, b.created_at, b.updated_at`

func bookingDest(b *entity.Booking) []any {
	return []any{
		&b.ID,
		&b.UserID,
		&b.HotelID,
		&b.RoomID,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.Nights,
		&b.Amount,
		&b.PaymentMethod,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	if err := row.Scan(bookingDest(&booking)...); err != nil {
		return nil, err
	}
	return &booking, nil
}

func scanBookingDetail(row pgx.Row) (*entity.BookingDetail, error) {
	var detail entity.BookingDetail
	dest := append(bookingDest(&detail.Booking), &detail.UserName, &detail.HotelName, &detail.RoomNumber)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, hotel_id, room_id, check_in_date, check_out_date,
		                      nights, amount, payment_method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.HotelID,
		booking.RoomID,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.Nights,
		booking.Amount,
		booking.PaymentMethod,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if database.IsUniqueViolation(err, activeBookingConstraint) {
		return ErrRoomAlreadyBooked
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("room_id", booking.RoomID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID, err)
	}

	return nil
}

func (r *bookingRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking %s: %w", id, err)
	}
	return booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1`, id)
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1 FOR UPDATE`, id)
}

const bookingDetailQuery = `SELECT ` + bookingColumns + `,
		       COALESCE(u.name, ''), COALESCE(h.name, ''), COALESCE(r.number, 0)
		FROM bookings b
		LEFT JOIN users u ON u.id = b.user_id
		LEFT JOIN hotels h ON h.id = b.hotel_id
		LEFT JOIN rooms r ON r.id = b.room_id
`

func (r *bookingRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	query := bookingDetailQuery + ` WHERE b.id = $1`

	detail, err := scanBookingDetail(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking detail", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking detail %s: %w", id, err)
	}
	return detail, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailQuery + `
		WHERE ($1::uuid IS NULL OR b.user_id = $1)
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, filter.UserID, limit, offset)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.BookingDetail
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking", zap.Error(err))
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, detail)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE ($1::uuid IS NULL OR user_id = $1)`

	var total int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, filter.UserID).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return total, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, to, id, from)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update booking status %s: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) DeleteTerminal(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM bookings WHERE id = $1 AND status IN ('cancelled', 'expired')`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking", zap.Error(err), zap.String("booking_id", id.String()))
		return false, fmt.Errorf("delete booking %s: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

// FindOverdue returns live bookings whose check-out day began before now,
// comparing at full timestamp precision in UTC.
func (r *bookingRepository) FindOverdue(ctx context.Context, now time.Time, limit int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.check_out_date < ($1::timestamptz AT TIME ZONE 'UTC')
		  AND b.status NOT IN ('cancelled', 'expired')
		ORDER BY b.check_out_date ASC
		LIMIT $2
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, now, limit)
	if err != nil {
		r.log.Error("Failed to query overdue bookings", zap.Error(err))
		return nil, fmt.Errorf("query overdue bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan overdue booking", zap.Error(err))
			return nil, fmt.Errorf("scan overdue booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
