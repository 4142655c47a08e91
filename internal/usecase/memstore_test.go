package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
)

// memStore backs every repository interface with maps. Writes made inside
// WithinTransaction register undo actions that run when the unit fails.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	sessions map[uuid.UUID]*entity.Session
	hotels   map[uuid.UUID]*entity.Hotel
	rooms    map[uuid.UUID]*entity.Room
	bookings map[uuid.UUID]*entity.Booking

	failBookingCreate error
	failStatusUpdate  map[uuid.UUID]error
	afterFindOverdue  func()
}

func newMemStore() *memStore {
	return &memStore{
		users:            map[uuid.UUID]*entity.User{},
		sessions:         map[uuid.UUID]*entity.Session{},
		hotels:           map[uuid.UUID]*entity.Hotel{},
		rooms:            map[uuid.UUID]*entity.Room{},
		bookings:         map[uuid.UUID]*entity.Booking{},
		failStatusUpdate: map[uuid.UUID]error{},
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Tx:      s,
		User:    &memUsers{s},
		Session: &memSessions{s},
		Hotel:   &memHotels{s},
		Room:    &memRooms{s},
		Booking: &memBookings{s},
	}
}

type memTx struct {
	undo []func()
}

type memTxKey struct{}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		return fn(ctx)
	}

	tx := &memTx{}
	if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
		s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// onRollback must be called with s.mu held.
func onRollback(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		tx.undo = append(tx.undo, undo)
	}
}

// ---- users ----

type memUsers struct{ s *memStore }

func (r *memUsers) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) || u.Username == user.Username {
			return repository.ErrDuplicateUser
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	onRollback(ctx, func() { delete(r.s.users, user.ID) })
	return nil
}

func (r *memUsers) find(match func(*entity.User) bool) *entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.DeletedAt == nil && match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (r *memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *memUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (r *memUsers) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var users []*entity.User
	for _, u := range r.s.users {
		if u.DeletedAt == nil {
			cp := *u
			users = append(users, &cp)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return page(users, limit, offset), nil
}

func (r *memUsers) CountAll(ctx context.Context) (int64, error) {
	users, _ := r.FindAll(ctx, 1<<30, 0)
	return int64(len(users)), nil
}

func (r *memUsers) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[user.ID]
	if !ok || cur.DeletedAt != nil {
		return repository.ErrNotFound
	}
	for id, u := range r.s.users {
		if id != user.ID && (strings.EqualFold(u.Email, user.Email) || u.Username == user.Username) {
			return repository.ErrDuplicateUser
		}
	}
	prev := *cur
	cp := *user
	r.s.users[user.ID] = &cp
	onRollback(ctx, func() { r.s.users[user.ID] = &prev })
	return nil
}

func (r *memUsers) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	u.DeletedAt = &now
	u.IsActive = false
	onRollback(ctx, func() {
		u.DeletedAt = nil
		u.IsActive = true
	})
	return true, nil
}

// ---- sessions ----

type memSessions struct{ s *memStore }

func (r *memSessions) Create(ctx context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *session
	r.s.sessions[session.Token] = &cp
	onRollback(ctx, func() { delete(r.s.sessions, session.Token) })
	return nil
}

func (r *memSessions) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[token]
	if !ok || sess.RevokedAt != nil || !sess.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (r *memSessions) Revoke(_ context.Context, token uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[token]
	if !ok || sess.RevokedAt != nil {
		return false, nil
	}
	now := time.Now()
	sess.RevokedAt = &now
	return true, nil
}

func (r *memSessions) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	for _, sess := range r.s.sessions {
		if sess.UserID == userID && sess.RevokedAt == nil {
			sess.RevokedAt = &now
		}
	}
	return nil
}

func (r *memSessions) CleanExpiredSessions(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var removed int64
	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	for token, sess := range r.s.sessions {
		if sess.ExpiresAt.Before(cutoff) {
			delete(r.s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// ---- hotels ----

type memHotels struct{ s *memStore }

func (r *memHotels) Create(ctx context.Context, hotel *entity.Hotel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *hotel
	r.s.hotels[hotel.ID] = &cp
	onRollback(ctx, func() { delete(r.s.hotels, hotel.ID) })
	return nil
}

func (r *memHotels) FindByID(_ context.Context, id uuid.UUID) (*entity.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.hotels[id]
	if !ok || h.DeletedAt != nil {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (r *memHotels) FindAll(_ context.Context, limit, offset int) ([]*entity.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var hotels []*entity.Hotel
	for _, h := range r.s.hotels {
		if h.DeletedAt == nil {
			cp := *h
			hotels = append(hotels, &cp)
		}
	}
	sort.Slice(hotels, func(i, j int) bool { return hotels[i].Name < hotels[j].Name })
	return page(hotels, limit, offset), nil
}

func (r *memHotels) CountAll(ctx context.Context) (int64, error) {
	hotels, _ := r.FindAll(ctx, 1<<30, 0)
	return int64(len(hotels)), nil
}

func (r *memHotels) Update(ctx context.Context, hotel *entity.Hotel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.hotels[hotel.ID]
	if !ok || cur.DeletedAt != nil {
		return repository.ErrNotFound
	}
	prev := *cur
	cp := *hotel
	r.s.hotels[hotel.ID] = &cp
	onRollback(ctx, func() { r.s.hotels[hotel.ID] = &prev })
	return nil
}

func (r *memHotels) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.hotels[id]
	if !ok || h.DeletedAt != nil {
		return false, nil
	}
	for _, b := range r.s.bookings {
		if b.HotelID == id && b.Status == entity.BookingStatusConfirmed {
			return false, nil
		}
	}
	now := time.Now()
	h.DeletedAt = &now
	onRollback(ctx, func() { h.DeletedAt = nil })
	return true, nil
}

// ---- rooms ----

type memRooms struct{ s *memStore }

func (r *memRooms) Create(ctx context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.rooms {
		if existing.DeletedAt == nil && existing.HotelID == room.HotelID && existing.Number == room.Number {
			return repository.ErrDuplicateRoomNumber
		}
	}
	cp := *room
	r.s.rooms[room.ID] = &cp
	onRollback(ctx, func() { delete(r.s.rooms, room.ID) })
	return nil
}

func (r *memRooms) find(match func(*entity.Room) bool) *entity.Room {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, room := range r.s.rooms {
		if room.DeletedAt == nil && match(room) {
			cp := *room
			return &cp
		}
	}
	return nil
}

func (r *memRooms) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.find(func(room *entity.Room) bool { return room.ID == id }), nil
}

func (r *memRooms) FindByHotelAndID(_ context.Context, hotelID, roomID uuid.UUID) (*entity.Room, error) {
	return r.find(func(room *entity.Room) bool { return room.ID == roomID && room.HotelID == hotelID }), nil
}

func (r *memRooms) FindByHotelAndNumber(_ context.Context, hotelID uuid.UUID, number int) (*entity.Room, error) {
	return r.find(func(room *entity.Room) bool { return room.HotelID == hotelID && room.Number == number }), nil
}

func (r *memRooms) FindByHotelID(_ context.Context, hotelID uuid.UUID) ([]*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rooms []*entity.Room
	for _, room := range r.s.rooms {
		if room.DeletedAt == nil && room.HotelID == hotelID {
			cp := *room
			rooms = append(rooms, &cp)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })
	return rooms, nil
}

func (r *memRooms) CountByHotelID(ctx context.Context, hotelID uuid.UUID) (int64, int64, error) {
	rooms, _ := r.FindByHotelID(ctx, hotelID)
	var available int64
	for _, room := range rooms {
		if room.Availability {
			available++
		}
	}
	return int64(len(rooms)), available, nil
}

func (r *memRooms) MaxNumber(ctx context.Context, hotelID uuid.UUID) (int, error) {
	rooms, _ := r.FindByHotelID(ctx, hotelID)
	if len(rooms) == 0 {
		return 0, nil
	}
	return rooms[len(rooms)-1].Number, nil
}

func (r *memRooms) Update(ctx context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.rooms[room.ID]
	if !ok || cur.DeletedAt != nil || cur.HotelID != room.HotelID {
		return repository.ErrNotFound
	}
	prev := *cur
	cur.Number = room.Number
	cur.Type = room.Type
	cur.Price = room.Price
	cur.Amenities = room.Amenities
	cur.UpdatedAt = room.UpdatedAt
	onRollback(ctx, func() { *cur = prev })
	return nil
}

func (r *memRooms) Delete(ctx context.Context, hotelID, roomID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[roomID]
	if !ok || room.DeletedAt != nil || room.HotelID != hotelID || !room.Availability {
		return false, nil
	}
	now := time.Now()
	room.DeletedAt = &now
	onRollback(ctx, func() { room.DeletedAt = nil })
	return true, nil
}

func (r *memRooms) DeleteByHotelID(ctx context.Context, hotelID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var live []*entity.Room
	for _, room := range r.s.rooms {
		if room.HotelID == hotelID && room.DeletedAt == nil {
			if !room.Availability {
				return false, nil
			}
			live = append(live, room)
		}
	}
	now := time.Now()
	for _, room := range live {
		room := room
		room.DeletedAt = &now
		onRollback(ctx, func() { room.DeletedAt = nil })
	}
	return true, nil
}

func (r *memRooms) Reserve(ctx context.Context, hotelID, roomID uuid.UUID) (*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[roomID]
	if !ok || room.DeletedAt != nil || room.HotelID != hotelID || !room.Availability {
		return nil, nil
	}
	room.Availability = false
	onRollback(ctx, func() { room.Availability = true })
	cp := *room
	return &cp, nil
}

func (r *memRooms) Release(ctx context.Context, roomID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[roomID]
	if !ok || room.DeletedAt != nil {
		return false, nil
	}
	prev := room.Availability
	room.Availability = true
	onRollback(ctx, func() { room.Availability = prev })
	return true, nil
}

// ---- bookings ----

type memBookings struct{ s *memStore }

func (r *memBookings) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failBookingCreate != nil {
		return r.s.failBookingCreate
	}
	for _, b := range r.s.bookings {
		if b.RoomID == booking.RoomID && b.Status == entity.BookingStatusConfirmed {
			return repository.ErrRoomAlreadyBooked
		}
	}
	cp := *booking
	r.s.bookings[booking.ID] = &cp
	onRollback(ctx, func() { delete(r.s.bookings, booking.ID) })
	return nil
}

func (r *memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBookings) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *memBookings) detail(b *entity.Booking) *entity.BookingDetail {
	d := &entity.BookingDetail{Booking: *b}
	if u, ok := r.s.users[b.UserID]; ok {
		d.UserName = u.Name
	}
	if h, ok := r.s.hotels[b.HotelID]; ok {
		d.HotelName = h.Name
	}
	if room, ok := r.s.rooms[b.RoomID]; ok {
		d.RoomNumber = room.Number
	}
	return d
}

func (r *memBookings) FindDetailByID(_ context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return r.detail(b), nil
}

func (r *memBookings) filtered(filter repository.BookingFilter) []*entity.BookingDetail {
	var out []*entity.BookingDetail
	for _, b := range r.s.bookings {
		if filter.UserID == nil || b.UserID == *filter.UserID {
			out = append(out, r.detail(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memBookings) FindAll(_ context.Context, filter repository.BookingFilter, limit, offset int) ([]*entity.BookingDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.filtered(filter), limit, offset), nil
}

func (r *memBookings) Count(_ context.Context, filter repository.BookingFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

func (r *memBookings) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failStatusUpdate[id]; err != nil {
		return false, err
	}
	b, ok := r.s.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	onRollback(ctx, func() { b.Status = from })
	return true, nil
}

func (r *memBookings) DeleteTerminal(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || !b.Status.IsTerminal() {
		return false, nil
	}
	delete(r.s.bookings, id)
	onRollback(ctx, func() { r.s.bookings[id] = b })
	return true, nil
}

func (r *memBookings) FindOverdue(_ context.Context, now time.Time, limit int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if b.CheckOutDate.Before(now) && !b.Status.IsTerminal() {
			cp := *b
			out = append(out, &cp)
		}
	}
	hook := r.s.afterFindOverdue
	r.s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CheckOutDate.Before(out[j].CheckOutDate) })
	if hook != nil {
		hook()
	}
	return page(out, limit, 0), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ---- invariant helpers ----

// checkAvailabilityInvariant returns the rooms whose availability disagrees
// with the presence of a confirmed booking.
func (s *memStore) checkAvailabilityInvariant() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	held := map[uuid.UUID]int{}
	for _, b := range s.bookings {
		if b.Status == entity.BookingStatusConfirmed {
			held[b.RoomID]++
		}
	}
	var broken []uuid.UUID
	for id, room := range s.rooms {
		if room.Availability == (held[id] > 0) || held[id] > 1 {
			broken = append(broken, id)
		}
	}
	return broken
}

func (s *memStore) room(id uuid.UUID) entity.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.rooms[id]
}

func (s *memStore) booking(id uuid.UUID) (entity.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return entity.Booking{}, false
	}
	return *b, true
}

var errInjected = errors.New("injected failure")
