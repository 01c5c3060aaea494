package models

import "time"

type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	Year         int    `json:"year"`
}

type StudentProfile struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	Skills    []string    `json:"skills"`
	Education []Education `json:"education"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// StudentDetail joins a student profile with its owning user record.
type StudentDetail struct {
	StudentProfile
	User UserSummary `json:"user"`
}
