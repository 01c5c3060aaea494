package models

import "time"

const (
	AppointmentPending   = "pending"
	AppointmentAccepted  = "accepted"
	AppointmentRejected  = "rejected"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID              int64     `json:"id"`
	StudentID       int64     `json:"student_id"`
	MentorID        int64     `json:"mentor_id"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	DurationMinutes int       `json:"duration"`
	Purpose         string    `json:"purpose"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Participant is the denormalized profile+user slice embedded in
// appointment and review listings.
type Participant struct {
	ProfileID      int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	PhotoURL       *string `json:"photo_url,omitempty"`
	Specialization string  `json:"specialization,omitempty"`
}

type AppointmentDetail struct {
	Appointment
	Student Participant `json:"student"`
	Mentor  Participant `json:"mentor"`
}
