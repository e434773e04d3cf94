package entity

import "time"

type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Body      string
	ReadAt    *time.Time
	CreatedAt time.Time
}
