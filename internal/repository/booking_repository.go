package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
)

// BookingFilter narrows List.  Zero values match everything.
type BookingFilter struct {
	Room          model.RoomType // only bookings in this room
	RequesterName string         // requester name, compared case-insensitively
}

// Match reports whether b passes the filter.  Store implementations that do
// not push the filter into a query use it directly.
func (f BookingFilter) Match(b model.Booking) bool {
	if f.Room != "" && b.Room != f.Room {
		return false
	}
	if f.RequesterName != "" && !strings.EqualFold(strings.TrimSpace(b.RequesterName), strings.TrimSpace(f.RequesterName)) {
		return false
	}
	return true
}

// BookingRepo persists bookings in the room_bookings table.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to db.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, seat_id, room_type, requester_name, requester_group, requester_phone,
start_time, duration, created_at, cancel_token_hash, claim_key`

// Create inserts b.  When b.ClaimKey is set the unique index on claim_key
// rejects a second live booking for the same seat with ErrSeatTaken; a nil
// claim key is stored as NULL and never collides.
func (r *BookingRepo) Create(ctx context.Context, b model.Booking) error {
	const q = `INSERT INTO room_bookings (` + bookingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var claim sql.NullString
	if b.ClaimKey != nil {
		claim = sql.NullString{String: *b.ClaimKey, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, q,
		b.ID, b.SeatID, string(b.Room), b.RequesterName, b.RequesterGroup, b.RequesterPhone,
		b.StartTime, string(b.Duration), b.CreatedAt, b.CancelTokenHash, claim)
	if err != nil {
		if isDuplicate(err) {
			return ErrSeatTaken
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// Get returns the booking with the given id.
func (r *BookingRepo) Get(ctx context.Context, id string) (model.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM room_bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// Delete removes the booking with the given id.  Deleting a booking that is
// already gone returns ErrNotFound so that only one of two racing clears
// reports success.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM room_bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns bookings matching f, newest first.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]model.Booking, error) {
	var (
		where []string
		args  []interface{}
	)
	if f.Room != "" {
		where = append(where, "room_type = ?")
		args = append(args, string(f.Room))
	}
	if f.RequesterName != "" {
		where = append(where, "LOWER(requester_name) = LOWER(?)")
		args = append(args, f.RequesterName)
	}
	q := `SELECT ` + bookingColumns + ` FROM room_bookings`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(s rowScanner) (model.Booking, error) {
	var (
		b        model.Booking
		room     string
		duration string
		claim    sql.NullString
	)
	err := s.Scan(&b.ID, &b.SeatID, &room, &b.RequesterName, &b.RequesterGroup, &b.RequesterPhone,
		&b.StartTime, &duration, &b.CreatedAt, &b.CancelTokenHash, &claim)
	if err != nil {
		return model.Booking{}, err
	}
	b.Room = model.RoomType(room)
	b.Duration = model.Duration(duration)
	if claim.Valid {
		k := claim.String
		b.ClaimKey = &k
	}
	return b, nil
}
