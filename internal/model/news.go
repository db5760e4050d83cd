package model

// RoomNews is an announcement shown on the seat desk banner.
type RoomNews struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"` // epoch millis
}
