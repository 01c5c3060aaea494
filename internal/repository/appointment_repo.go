package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
	"github.com/jackc/pgx/v5"
)

type CreateAppointmentInput struct {
	StudentID       int64
	MentorID        int64
	Date            time.Time
	Time            string
	DurationMinutes int
	Purpose         string
}

type AppointmentListFilter struct {
	ActorProfileID int64
	Role           string
	Status         string
}

type AppointmentRepository struct {
	db DBTX
}

func NewAppointmentRepository(db DBTX) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

const appointmentColumns = `
	id, student_id, mentor_id, session_date, start_time, duration_min, purpose, status, created_at, updated_at
`

func (r *AppointmentRepository) Create(ctx context.Context, input CreateAppointmentInput) (*models.Appointment, error) {
	query := `
		INSERT INTO appointments (student_id, mentor_id, session_date, start_time, duration_min, purpose, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING ` + appointmentColumns + `
	`
	return scanAppointment(r.db.QueryRow(ctx, query,
		input.StudentID,
		input.MentorID,
		input.Date,
		input.Time,
		input.DurationMinutes,
		input.Purpose,
	))
}

func (r *AppointmentRepository) GetByID(ctx context.Context, appointmentID int64) (*models.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1
	`
	return scanAppointment(r.db.QueryRow(ctx, query, appointmentID))
}

// List returns the caller's appointments, denormalized with both
// participants, newest first.
func (r *AppointmentRepository) List(ctx context.Context, filter AppointmentListFilter) ([]models.AppointmentDetail, error) {
	actorColumn := "a.student_id"
	if filter.Role == models.RoleMentor {
		actorColumn = "a.mentor_id"
	}

	args := []any{filter.ActorProfileID}
	whereParts := []string{fmt.Sprintf("%s = $1", actorColumn)}
	if status := strings.TrimSpace(filter.Status); status != "" {
		args = append(args, status)
		whereParts = append(whereParts, fmt.Sprintf("a.status = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.student_id, a.mentor_id, a.session_date, a.start_time, a.duration_min,
			   a.purpose, a.status, a.created_at, a.updated_at,
			   sp.id, su.id, su.name, su.email, su.photo_url,
			   mp.id, mu.id, mu.name, mu.email, mu.photo_url, mp.specialization
		FROM appointments a
		JOIN student_profiles sp ON sp.id = a.student_id
		JOIN users su ON su.id = sp.user_id
		JOIN mentor_profiles mp ON mp.id = a.mentor_id
		JOIN users mu ON mu.id = mp.user_id
		WHERE %s
		ORDER BY a.session_date DESC, a.start_time DESC, a.id DESC
	`, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]models.AppointmentDetail, 0)
	for rows.Next() {
		var detail models.AppointmentDetail
		var date time.Time
		if err := rows.Scan(
			&detail.ID,
			&detail.StudentID,
			&detail.MentorID,
			&date,
			&detail.Time,
			&detail.DurationMinutes,
			&detail.Purpose,
			&detail.Status,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.Student.ProfileID,
			&detail.Student.UserID,
			&detail.Student.Name,
			&detail.Student.Email,
			&detail.Student.PhotoURL,
			&detail.Mentor.ProfileID,
			&detail.Mentor.UserID,
			&detail.Mentor.Name,
			&detail.Mentor.Email,
			&detail.Mentor.PhotoURL,
			&detail.Mentor.Specialization,
		); err != nil {
			return nil, err
		}
		detail.Date = date.Format("2006-01-02")
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListForMentorOnDate returns a mentor's appointments on a date that still
// occupy the slot, for overlap checks.
func (r *AppointmentRepository) ListForMentorOnDate(ctx context.Context, mentorID int64, date time.Time) ([]models.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE mentor_id = $1
		  AND session_date = $2
		  AND status NOT IN ('rejected', 'cancelled')
		ORDER BY start_time ASC
	`
	rows, err := r.db.Query(ctx, query, mentorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]models.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatusIfCurrent transitions status only when the stored status still
// matches; pgx.ErrNoRows signals a lost race or an invalid source state.
func (r *AppointmentRepository) UpdateStatusIfCurrent(ctx context.Context, appointmentID int64, currentStatus, nextStatus string) (*models.Appointment, error) {
	query := `
		UPDATE appointments
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + appointmentColumns + `
	`
	return scanAppointment(r.db.QueryRow(ctx, query, appointmentID, currentStatus, nextStatus))
}

// HasCompletedBetween reports whether the student has at least one completed
// appointment with the mentor. Gates review creation.
func (r *AppointmentRepository) HasCompletedBetween(ctx context.Context, studentID, mentorID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM appointments
			WHERE student_id = $1 AND mentor_id = $2 AND status = 'completed'
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, studentID, mentorID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanAppointment(row pgx.Row) (*models.Appointment, error) {
	var appointment models.Appointment
	var date time.Time
	err := row.Scan(
		&appointment.ID,
		&appointment.StudentID,
		&appointment.MentorID,
		&date,
		&appointment.Time,
		&appointment.DurationMinutes,
		&appointment.Purpose,
		&appointment.Status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	appointment.Date = date.Format("2006-01-02")
	return &appointment, nil
}
