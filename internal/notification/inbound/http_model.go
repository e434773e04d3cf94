package inbound

import "time"

type NotificationResponse struct {
	ID        int64      `json:"id,string"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type MarkReadResponse struct{}

func (MarkReadResponse) Message() string {
	return "Notification marked as read."
}
