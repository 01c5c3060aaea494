package models

import "time"

type Review struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	MentorID  int64     `json:"mentor_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewDetail struct {
	Review
	Student Participant `json:"student"`
}
