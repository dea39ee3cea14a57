package model

import "time"

// Feedback represents a single submitted feedback entry.
// Entries are immutable once persisted: no update or delete path exists.
type Feedback struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      *string   `json:"name" gorm:"size:255"`
	Email     *string   `json:"email" gorm:"size:255"`
	Feedback  string    `json:"feedback" gorm:"type:text;not null"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	ProductID string    `json:"product_id" gorm:"size:255;default:'general'"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingCount is one bucket of the rating distribution.
type RatingCount struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}
