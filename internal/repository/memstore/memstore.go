// Package memstore keeps bookings, seat metadata, announcements and staff
// accounts in process memory.  It backs `serve --in-memory` and the
// workflow tests, and follows the same error contract as the MySQL
// repositories.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/repository"
)

// Bookings is an in-memory booking store.  A non-nil ClaimKey is unique
// across live bookings, mirroring the unique index of room_bookings.
type Bookings struct {
	mu     sync.Mutex
	byID   map[string]model.Booking
	claims map[string]string // claim key -> booking id
}

func NewBookings() *Bookings {
	return &Bookings{byID: map[string]model.Booking{}, claims: map[string]string{}}
}

func (s *Bookings) Create(_ context.Context, b model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ClaimKey != nil {
		if _, taken := s.claims[*b.ClaimKey]; taken {
			return repository.ErrSeatTaken
		}
		s.claims[*b.ClaimKey] = b.ID
	}
	s.byID[b.ID] = b
	return nil
}

func (s *Bookings) Get(_ context.Context, id string) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byID[id]
	if !ok {
		return model.Booking{}, repository.ErrNotFound
	}
	return b, nil
}

func (s *Bookings) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(s.byID, id)
	if b.ClaimKey != nil {
		delete(s.claims, *b.ClaimKey)
	}
	return nil
}

// List returns bookings matching f, newest first.  Bookings created in the
// same millisecond keep a stable order by id.
func (s *Bookings) List(_ context.Context, f repository.BookingFilter) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Booking{}
	for _, b := range s.byID {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SeatMetadata is an in-memory metadata store.
type SeatMetadata struct {
	mu   sync.RWMutex
	byID map[model.SeatKey]model.SeatMetadata
}

func NewSeatMetadata() *SeatMetadata {
	return &SeatMetadata{byID: map[model.SeatKey]model.SeatMetadata{}}
}

func (s *SeatMetadata) Put(_ context.Context, m model.SeatMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.Features = append([]string{}, m.Features...)
	s.byID[m.Key] = m
	return nil
}

func (s *SeatMetadata) Delete(_ context.Context, key model.SeatKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[key]; !ok {
		return repository.ErrNotFound
	}
	delete(s.byID, key)
	return nil
}

func (s *SeatMetadata) All(_ context.Context) (map[model.SeatKey]model.SeatMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[model.SeatKey]model.SeatMetadata, len(s.byID))
	for k, v := range s.byID {
		v.Features = append([]string{}, v.Features...)
		out[k] = v
	}
	return out, nil
}

// News is an in-memory announcement store.
type News struct {
	mu    sync.Mutex
	items map[string]model.RoomNews
}

func NewNews() *News { return &News{items: map[string]model.RoomNews{}} }

func (s *News) Create(_ context.Context, n model.RoomNews) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[n.ID] = n
	return nil
}

func (s *News) List(_ context.Context) ([]model.RoomNews, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.RoomNews, 0, len(s.items))
	for _, n := range s.items {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *News) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// Users is an in-memory staff account store.
type Users struct {
	mu     sync.Mutex
	byID   map[uint64]model.User
	nextID uint64
}

func NewUsers() *Users { return &Users{byID: map[uint64]model.User{}} }

func (s *Users) Create(_ context.Context, email, passwordHash, role string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	s.nextID++
	now := time.Now().UTC()
	s.byID[s.nextID] = model.User{
		ID: s.nextID, Email: email, PasswordHash: passwordHash, Role: role,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	return s.nextID, nil
}

func (s *Users) GetByEmail(_ context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *Users) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}
