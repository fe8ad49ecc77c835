package model

import "time"

// Lesson represents a video lesson shown on the learning page.
type Lesson struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	OrderNumber int       `json:"order_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateLessonRequest is the admin payload for adding a lesson.
type CreateLessonRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	VideoURL    string `json:"video_url" binding:"required,url,max=500"`
	OrderNumber int    `json:"order_number" binding:"min=0"`
}
