package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
)

// SeatMetadataRepo persists seat annotations in seat_metadata, keyed by
// the serialized seat key ("reading_5").
type SeatMetadataRepo struct {
	db *sql.DB
}

// NewSeatMetadataRepo returns a SeatMetadataRepo bound to db.
func NewSeatMetadataRepo(db *sql.DB) *SeatMetadataRepo { return &SeatMetadataRepo{db: db} }

// Put writes m, replacing every field of an existing row for the same key.
func (r *SeatMetadataRepo) Put(ctx context.Context, m model.SeatMetadata) error {
	features := m.Features
	if features == nil {
		features = []string{}
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}
	const q = `INSERT INTO seat_metadata (id, description, features) VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE description = VALUES(description), features = VALUES(features)`
	if _, err := r.db.ExecContext(ctx, q, m.Key.String(), m.Description, string(raw)); err != nil {
		return fmt.Errorf("put seat metadata: %w", err)
	}
	return nil
}

// Delete removes the metadata for key.  Bookings are untouched.
func (r *SeatMetadataRepo) Delete(ctx context.Context, key model.SeatKey) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM seat_metadata WHERE id = ?`, key.String())
	if err != nil {
		return fmt.Errorf("delete seat metadata: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete seat metadata: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// All returns every stored annotation.  Rows whose id is not a valid seat
// key are skipped.
func (r *SeatMetadataRepo) All(ctx context.Context) (map[model.SeatKey]model.SeatMetadata, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, description, features FROM seat_metadata`)
	if err != nil {
		return nil, fmt.Errorf("list seat metadata: %w", err)
	}
	defer rows.Close()

	out := make(map[model.SeatKey]model.SeatMetadata)
	for rows.Next() {
		var id, desc, raw string
		if err := rows.Scan(&id, &desc, &raw); err != nil {
			return nil, fmt.Errorf("scan seat metadata: %w", err)
		}
		key, err := model.ParseSeatKey(id)
		if err != nil {
			continue
		}
		features := []string{}
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &features); err != nil {
				return nil, fmt.Errorf("decode features of %s: %w", id, err)
			}
		}
		out[key] = model.SeatMetadata{Key: key, Description: desc, Features: features}
	}
	return out, rows.Err()
}
