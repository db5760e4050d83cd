package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
)

// NewsRepo persists announcements in room_news.
type NewsRepo struct {
	db *sql.DB
}

// NewNewsRepo returns a NewsRepo bound to db.
func NewNewsRepo(db *sql.DB) *NewsRepo { return &NewsRepo{db: db} }

// Create inserts n.
func (r *NewsRepo) Create(ctx context.Context, n model.RoomNews) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO room_news (id, title, content, created_at) VALUES (?, ?, ?, ?)`,
		n.ID, n.Title, n.Content, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert news: %w", err)
	}
	return nil
}

// List returns every announcement, newest first.
func (r *NewsRepo) List(ctx context.Context) ([]model.RoomNews, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, created_at FROM room_news ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	out := []model.RoomNews{}
	for rows.Next() {
		var n model.RoomNews
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan news: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Delete removes the announcement with id.
func (r *NewsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM room_news WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
