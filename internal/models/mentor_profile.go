package models

import "time"

type WorkExperience struct {
	Position    string  `json:"position"`
	Company     string  `json:"company"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Current     bool    `json:"current"`
	Description string  `json:"description"`
}

// AvailabilityWindow is a weekday with the "HH:MM" slots a mentor offers.
type AvailabilityWindow struct {
	Day   string   `json:"day"`
	Slots []string `json:"slots"`
}

type MentorProfile struct {
	ID                 int64                `json:"id"`
	UserID             int64                `json:"user_id"`
	Specialization     string               `json:"specialization"`
	Skills             []string             `json:"skills"`
	Education          []Education          `json:"education"`
	WorkExperience     []WorkExperience     `json:"work_experience"`
	CurrentlyWorkingAt string               `json:"currently_working_at"`
	Availability       []AvailabilityWindow `json:"availability"`
	Rating             float64              `json:"rating"`
	ReviewCount        int                  `json:"review_count"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// MentorDetail joins a mentor profile with its owning user record.
type MentorDetail struct {
	MentorProfile
	User UserSummary `json:"user"`
}

// MentorWithScore carries a recommendation match score alongside the mentor.
type MentorWithScore struct {
	MentorDetail
	MatchScore int `json:"match_score"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
