package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const roomNumberConstraint = "rooms_hotel_number_key"

var ErrDuplicateRoomNumber = errors.New("room number already exists in this hotel")

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindByHotelAndID(ctx context.Context, hotelID, roomID uuid.UUID) (*entity.Room, error)
	FindByHotelAndNumber(ctx context.Context, hotelID uuid.UUID, number int) (*entity.Room, error)
	FindByHotelID(ctx context.Context, hotelID uuid.UUID) ([]*entity.Room, error)
	CountByHotelID(ctx context.Context, hotelID uuid.UUID) (total, available int64, err error)
	MaxNumber(ctx context.Context, hotelID uuid.UUID) (int, error)
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, hotelID, roomID uuid.UUID) (bool, error)
	DeleteByHotelID(ctx context.Context, hotelID uuid.UUID) (bool, error)

	// Reserve flips availability from true to false in one statement and
	// returns the reserved room, or nil when the room was not available.
	Reserve(ctx context.Context, hotelID, roomID uuid.UUID) (*entity.Room, error)
	// Release marks the room available again and reports whether it existed.
	Release(ctx context.Context, roomID uuid.UUID) (bool, error)
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `id, hotel_id, number, type, price, amenities, availability,
		       created_at, updated_at, deleted_at`

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID,
		&room.HotelID,
		&room.Number,
		&room.Type,
		&room.Price,
		&room.Amenities,
		&room.Availability,
		&room.CreatedAt,
		&room.UpdatedAt,
		&room.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (id, hotel_id, number, type, price, amenities, availability,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		room.ID,
		room.HotelID,
		room.Number,
		room.Type,
		room.Price,
		room.Amenities,
		room.Availability,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if database.IsUniqueViolation(err, roomNumberConstraint) {
		return ErrDuplicateRoomNumber
	}
	if err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("hotel_id", room.HotelID.String()),
			zap.Int("number", room.Number),
		)
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

func (r *roomRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Room, error) {
	room, err := scanRoom(database.Conn(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room", zap.Error(err))
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return room, nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.findOne(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = $1 AND deleted_at IS NULL`, id)
}

func (r *roomRepository) FindByHotelAndID(ctx context.Context, hotelID, roomID uuid.UUID) (*entity.Room, error) {
	return r.findOne(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = $1 AND hotel_id = $2 AND deleted_at IS NULL`,
		roomID, hotelID)
}

func (r *roomRepository) FindByHotelAndNumber(ctx context.Context, hotelID uuid.UUID, number int) (*entity.Room, error) {
	return r.findOne(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE hotel_id = $1 AND number = $2 AND deleted_at IS NULL`,
		hotelID, number)
}

func (r *roomRepository) FindByHotelID(ctx context.Context, hotelID uuid.UUID) ([]*entity.Room, error) {
	query := `SELECT ` + roomColumns + `
		FROM rooms
		WHERE hotel_id = $1 AND deleted_at IS NULL
		ORDER BY number ASC
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, hotelID)
	if err != nil {
		r.log.Error("Failed to query rooms", zap.Error(err), zap.String("hotel_id", hotelID.String()))
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			r.log.Error("Failed to scan room", zap.Error(err))
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

func (r *roomRepository) CountByHotelID(ctx context.Context, hotelID uuid.UUID) (int64, int64, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE availability)
		FROM rooms
		WHERE hotel_id = $1 AND deleted_at IS NULL
	`

	var total, available int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, hotelID).Scan(&total, &available); err != nil {
		r.log.Error("Failed to count rooms", zap.Error(err), zap.String("hotel_id", hotelID.String()))
		return 0, 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return total, available, nil
}

// MaxNumber returns the highest room number in use, or 0 for an empty hotel.
func (r *roomRepository) MaxNumber(ctx context.Context, hotelID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(MAX(number), 0) FROM rooms WHERE hotel_id = $1 AND deleted_at IS NULL`

	var number int
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, hotelID).Scan(&number); err != nil {
		r.log.Error("Failed to read max room number", zap.Error(err))
		return 0, fmt.Errorf("failed to read max room number: %w", err)
	}
	return number, nil
}

// Update writes catalog fields only. Availability belongs to the booking flows.
func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET number = $1, type = $2, price = $3, amenities = $4, updated_at = $5
		WHERE id = $6 AND hotel_id = $7 AND deleted_at IS NULL
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		room.Number,
		room.Type,
		room.Price,
		room.Amenities,
		room.UpdatedAt,
		room.ID,
		room.HotelID,
	)
	if database.IsUniqueViolation(err, roomNumberConstraint) {
		return ErrDuplicateRoomNumber
	}
	if err != nil {
		r.log.Error("Failed to update room", zap.Error(err), zap.String("room_id", room.ID.String()))
		return fmt.Errorf("failed to update room: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete soft-deletes a room that is not currently booked.
func (r *roomRepository) Delete(ctx context.Context, hotelID, roomID uuid.UUID) (bool, error) {
	query := `
		UPDATE rooms
		SET deleted_at = NOW()
		WHERE id = $1 AND hotel_id = $2 AND availability = true AND deleted_at IS NULL
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, roomID, hotelID)
	if err != nil {
		r.log.Error("Failed to delete room", zap.Error(err), zap.String("room_id", roomID.String()))
		return false, fmt.Errorf("failed to delete room: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// DeleteByHotelID locks the hotel's live rooms and soft-deletes them only when
// none is booked. It reports false, deleting nothing, when a booked room remains.
func (r *roomRepository) DeleteByHotelID(ctx context.Context, hotelID uuid.UUID) (bool, error) {
	query := `
		WITH locked AS (
			SELECT id, availability FROM rooms
			WHERE hotel_id = $1 AND deleted_at IS NULL
			FOR UPDATE
		), deleted AS (
			UPDATE rooms SET deleted_at = NOW()
			WHERE id IN (SELECT id FROM locked)
			  AND NOT EXISTS (SELECT 1 FROM locked WHERE availability = false)
			RETURNING id
		)
		SELECT COUNT(*) FROM locked WHERE availability = false
	`

	var booked int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, hotelID).Scan(&booked); err != nil {
		r.log.Error("Failed to delete hotel rooms", zap.Error(err), zap.String("hotel_id", hotelID.String()))
		return false, fmt.Errorf("failed to delete hotel rooms: %w", err)
	}
	return booked == 0, nil
}

func (r *roomRepository) Reserve(ctx context.Context, hotelID, roomID uuid.UUID) (*entity.Room, error) {
	query := `
		UPDATE rooms
		SET availability = false, updated_at = NOW()
		WHERE id = $1 AND hotel_id = $2 AND availability = true AND deleted_at IS NULL
		RETURNING ` + roomColumns

	room, err := scanRoom(database.Conn(ctx, r.db).QueryRow(ctx, query, roomID, hotelID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to reserve room",
			zap.Error(err),
			zap.String("hotel_id", hotelID.String()),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("failed to reserve room: %w", err)
	}

	return room, nil
}

func (r *roomRepository) Release(ctx context.Context, roomID uuid.UUID) (bool, error) {
	query := `
		UPDATE rooms
		SET availability = true, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to release room", zap.Error(err), zap.String("room_id", roomID.String()))
		return false, fmt.Errorf("failed to release room: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
