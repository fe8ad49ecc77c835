package model

import "time"

// ContactStatus enumerates contact message states.
type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "NEW"
	ContactStatusReviewed ContactStatus = "REVIEWED"
)

// ContactMessage represents a message sent from the public contact form.
type ContactMessage struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// CreateContactRequest is the public payload for submitting a contact message.
type CreateContactRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Phone   string `json:"phone" binding:"required,min=7,max=20"`
	Message string `json:"message" binding:"required,min=5,max=2000"`
}

// UpdateContactStatusRequest is the admin payload for updating a message status.
type UpdateContactStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=NEW REVIEWED"`
}
