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

type HotelRepository interface {
	Create(ctx context.Context, hotel *entity.Hotel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Hotel, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, hotel *entity.Hotel) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type hotelRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHotelRepository(db database.PgxIface, log *zap.Logger) HotelRepository {
	return &hotelRepository{
		db:  db,
		log: log.With(zap.String("repository", "hotel")),
	}
}

const hotelColumns = `id, name, description, address, city, state, country, phone, email,
		       amenities, rating, price_min, price_max, created_at, updated_at, deleted_at`

func scanHotel(row pgx.Row) (*entity.Hotel, error) {
	var hotel entity.Hotel
	err := row.Scan(
		&hotel.ID,
		&hotel.Name,
		&hotel.Description,
		&hotel.Address,
		&hotel.City,
		&hotel.State,
		&hotel.Country,
		&hotel.Phone,
		&hotel.Email,
		&hotel.Amenities,
		&hotel.Rating,
		&hotel.PriceMin,
		&hotel.PriceMax,
		&hotel.CreatedAt,
		&hotel.UpdatedAt,
		&hotel.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *hotelRepository) Create(ctx context.Context, hotel *entity.Hotel) error {
	query := `
		INSERT INTO hotels (id, name, description, address, city, state, country, phone, email,
		                    amenities, rating, price_min, price_max, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		hotel.ID,
		hotel.Name,
		hotel.Description,
		hotel.Address,
		hotel.City,
		hotel.State,
		hotel.Country,
		hotel.Phone,
		hotel.Email,
		hotel.Amenities,
		hotel.Rating,
		hotel.PriceMin,
		hotel.PriceMax,
		hotel.CreatedAt,
		hotel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create hotel", zap.Error(err), zap.String("name", hotel.Name))
		return fmt.Errorf("failed to create hotel: %w", err)
	}

	return nil
}

func (r *hotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE id = $1 AND deleted_at IS NULL`

	hotel, err := scanHotel(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hotel by ID", zap.Error(err), zap.String("hotel_id", id.String()))
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}

	return hotel, nil
}

func (r *hotelRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Hotel, error) {
	query := `SELECT ` + hotelColumns + `
		FROM hotels
		WHERE deleted_at IS NULL
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to query hotels", zap.Error(err))
		return nil, fmt.Errorf("failed to query hotels: %w", err)
	}
	defer rows.Close()

	var hotels []*entity.Hotel
	for rows.Next() {
		hotel, err := scanHotel(rows)
		if err != nil {
			r.log.Error("Failed to scan hotel", zap.Error(err))
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, hotel)
	}

	return hotels, rows.Err()
}

func (r *hotelRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM hotels WHERE deleted_at IS NULL`).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count hotels", zap.Error(err))
		return 0, fmt.Errorf("failed to count hotels: %w", err)
	}
	return total, nil
}

func (r *hotelRepository) Update(ctx context.Context, hotel *entity.Hotel) error {
	query := `
		UPDATE hotels
		SET name = $1, description = $2, address = $3, city = $4, state = $5, country = $6,
		    phone = $7, email = $8, amenities = $9, rating = $10, price_min = $11,
		    price_max = $12, updated_at = $13
		WHERE id = $14 AND deleted_at IS NULL
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		hotel.Name,
		hotel.Description,
		hotel.Address,
		hotel.City,
		hotel.State,
		hotel.Country,
		hotel.Phone,
		hotel.Email,
		hotel.Amenities,
		hotel.Rating,
		hotel.PriceMin,
		hotel.PriceMax,
		hotel.UpdatedAt,
		hotel.ID,
	)
	if err != nil {
		r.log.Error("Failed to update hotel", zap.Error(err), zap.String("hotel_id", hotel.ID.String()))
		return fmt.Errorf("failed to update hotel: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete soft-deletes the hotel unless one of its rooms is held by a
// confirmed booking. It reports false when nothing was deleted.
func (r *hotelRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE hotels
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		  AND NOT EXISTS (
		      SELECT 1 FROM bookings WHERE hotel_id = $1 AND status = 'confirmed'
		  )
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete hotel", zap.Error(err), zap.String("hotel_id", id.String()))
		return false, fmt.Errorf("failed to delete hotel: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
