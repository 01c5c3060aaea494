package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
	"github.com/RamChoudhary007/ScholarGuide/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrForbidden              = errors.New("forbidden")
	ErrConflict               = errors.New("conflict")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidInput           = errors.New("invalid input")
	ErrStudentNotFound        = errors.New("student not found")
	ErrMentorNotFound         = errors.New("mentor not found")
	ErrReviewNotAllowed       = errors.New("review requires a completed appointment")
)

type studentProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.StudentDetail, error)
	GetByID(ctx context.Context, id int64) (*models.StudentDetail, error)
}

type mentorProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.MentorDetail, error)
	GetByID(ctx context.Context, id int64) (*models.MentorDetail, error)
}

type appointmentStore interface {
	GetByID(ctx context.Context, appointmentID int64) (*models.Appointment, error)
	List(ctx context.Context, filter repository.AppointmentListFilter) ([]models.AppointmentDetail, error)
	UpdateStatusIfCurrent(ctx context.Context, appointmentID int64, currentStatus, nextStatus string) (*models.Appointment, error)
}

// AppointmentNotifier pushes status events to connected clients. Delivery is
// best-effort; appointment state never depends on it.
type AppointmentNotifier interface {
	NotifyAppointment(event AppointmentEvent)
}

type AppointmentEvent struct {
	Type          string `json:"type"`
	AppointmentID int64  `json:"appointment_id"`
	Status        string `json:"status"`
	StudentUserID int64  `json:"-"`
	MentorUserID  int64  `json:"-"`
}

type AppointmentService struct {
	db              *pgxpool.Pool
	appointmentRepo appointmentStore
	studentRepo     studentProfileReader
	mentorRepo      mentorProfileReader
	notifier        AppointmentNotifier
}

func NewAppointmentService(
	db *pgxpool.Pool,
	appointmentRepo appointmentStore,
	studentRepo studentProfileReader,
	mentorRepo mentorProfileReader,
	notifier AppointmentNotifier,
) *AppointmentService {
	return &AppointmentService{
		db:              db,
		appointmentRepo: appointmentRepo,
		studentRepo:     studentRepo,
		mentorRepo:      mentorRepo,
		notifier:        notifier,
	}
}

type CreateAppointmentInput struct {
	MentorID        int64
	Date            string
	Time            string
	DurationMinutes int
	Purpose         string
}

func (s *AppointmentService) CreateAppointment(
	ctx context.Context,
	userID int64,
	input CreateAppointmentInput,
) (*models.AppointmentDetail, error) {
	if input.MentorID <= 0 || input.DurationMinutes <= 0 || strings.TrimSpace(input.Purpose) == "" {
		return nil, ErrInvalidInput
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(input.Date))
	if err != nil {
		return nil, ErrInvalidInput
	}
	startMin, err := parseClock(input.Time)
	if err != nil {
		return nil, ErrInvalidInput
	}

	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	mentor, err := s.mentorRepo.GetByID(ctx, input.MentorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMentorNotFound
		}
		return nil, err
	}

	// The overlap check and the insert must see the same bookings; the
	// mentor-keyed advisory lock serializes concurrent bookings for one
	// mentor without blocking anyone else's.
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", mentor.ID); err != nil {
		return nil, err
	}

	txAppointmentRepo := repository.NewAppointmentRepository(tx)
	booked, err := txAppointmentRepo.ListForMentorOnDate(ctx, mentor.ID, date)
	if err != nil {
		return nil, err
	}
	if slotOverlaps(booked, startMin, input.DurationMinutes) {
		return nil, ErrConflict
	}

	appointment, err := txAppointmentRepo.Create(ctx, repository.CreateAppointmentInput{
		StudentID:       student.ID,
		MentorID:        mentor.ID,
		Date:            date,
		Time:            formatClock(startMin),
		DurationMinutes: input.DurationMinutes,
		Purpose:         strings.TrimSpace(input.Purpose),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notify(AppointmentEvent{
		Type:          "appointment_created",
		AppointmentID: appointment.ID,
		Status:        appointment.Status,
		StudentUserID: student.UserID,
		MentorUserID:  mentor.UserID,
	})

	return &models.AppointmentDetail{
		Appointment: *appointment,
		Student:     studentParticipant(student),
		Mentor:      mentorParticipant(mentor),
	}, nil
}

func (s *AppointmentService) ListAppointments(
	ctx context.Context,
	userID int64,
	role string,
	status string,
) ([]models.AppointmentDetail, error) {
	var actorProfileID int64
	switch role {
	case models.RoleStudent:
		student, err := s.studentRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrStudentNotFound
			}
			return nil, err
		}
		actorProfileID = student.ID
	case models.RoleMentor:
		mentor, err := s.mentorRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrMentorNotFound
			}
			return nil, err
		}
		actorProfileID = mentor.ID
	default:
		return nil, ErrForbidden
	}

	return s.appointmentRepo.List(ctx, repository.AppointmentListFilter{
		ActorProfileID: actorProfileID,
		Role:           role,
		Status:         status,
	})
}

// TransitionStatus applies one lifecycle step. Accept/reject/complete belong
// to the owning mentor, cancel to the owning student; each step checks its
// source state and races are closed with a compare-and-set update.
func (s *AppointmentService) TransitionStatus(
	ctx context.Context,
	userID int64,
	role string,
	appointmentID int64,
	requestedStatus string,
) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	nextStatus, err := normalizeRequestedStatus(requestedStatus)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTransition(ctx, userID, role, appointment, nextStatus); err != nil {
		return nil, err
	}
	if err := validateSourceStatus(appointment.Status, nextStatus); err != nil {
		return nil, err
	}

	updated, err := s.appointmentRepo.UpdateStatusIfCurrent(ctx, appointmentID, appointment.Status, nextStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}

	s.notifyTransition(ctx, updated)
	return updated, nil
}

func (s *AppointmentService) authorizeTransition(
	ctx context.Context,
	userID int64,
	role string,
	appointment *models.Appointment,
	nextStatus string,
) error {
	switch nextStatus {
	case models.AppointmentAccepted, models.AppointmentRejected, models.AppointmentCompleted:
		if role != models.RoleMentor {
			return ErrForbidden
		}
		mentor, err := s.mentorRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrForbidden
			}
			return err
		}
		if mentor.ID != appointment.MentorID {
			return ErrForbidden
		}
	case models.AppointmentCancelled:
		if role != models.RoleStudent {
			return ErrForbidden
		}
		student, err := s.studentRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrForbidden
			}
			return err
		}
		if student.ID != appointment.StudentID {
			return ErrForbidden
		}
	default:
		return ErrInvalidStatus
	}
	return nil
}

func validateSourceStatus(currentStatus, nextStatus string) error {
	switch nextStatus {
	case models.AppointmentAccepted, models.AppointmentRejected:
		if currentStatus != models.AppointmentPending {
			return ErrInvalidStateTransition
		}
	case models.AppointmentCompleted:
		if currentStatus != models.AppointmentAccepted {
			return ErrInvalidStateTransition
		}
	case models.AppointmentCancelled:
		if currentStatus != models.AppointmentPending && currentStatus != models.AppointmentAccepted {
			return ErrInvalidStateTransition
		}
	default:
		return ErrInvalidStatus
	}
	return nil
}

func normalizeRequestedStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "accept", "accepted", "approve", "approved":
		return models.AppointmentAccepted, nil
	case "reject", "rejected":
		return models.AppointmentRejected, nil
	case "complete", "completed":
		return models.AppointmentCompleted, nil
	case "cancel", "cancelled", "canceled":
		return models.AppointmentCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s *AppointmentService) notifyTransition(ctx context.Context, appointment *models.Appointment) {
	if s.notifier == nil {
		return
	}

	event := AppointmentEvent{
		Type:          "appointment_update",
		AppointmentID: appointment.ID,
		Status:        appointment.Status,
	}
	if student, err := s.studentRepo.GetByID(ctx, appointment.StudentID); err == nil {
		event.StudentUserID = student.UserID
	}
	if mentor, err := s.mentorRepo.GetByID(ctx, appointment.MentorID); err == nil {
		event.MentorUserID = mentor.UserID
	}
	s.notifier.NotifyAppointment(event)
}

func (s *AppointmentService) notify(event AppointmentEvent) {
	if s.notifier != nil {
		s.notifier.NotifyAppointment(event)
	}
}

// slotOverlaps reports whether [startMin, startMin+durationMin) intersects
// any booked appointment. Back-to-back slots do not overlap.
func slotOverlaps(booked []models.Appointment, startMin, durationMin int) bool {
	for _, other := range booked {
		otherStart, err := parseClock(other.Time)
		if err != nil {
			continue
		}
		if startMin < otherStart+other.DurationMinutes && otherStart < startMin+durationMin {
			return true
		}
	}
	return false
}

func parseClock(value string) (int, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func formatClock(minutes int) string {
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format("15:04")
}

func studentParticipant(student *models.StudentDetail) models.Participant {
	return models.Participant{
		ProfileID: student.ID,
		UserID:    student.UserID,
		Name:      student.User.Name,
		Email:     student.User.Email,
		PhotoURL:  student.User.PhotoURL,
	}
}

func mentorParticipant(mentor *models.MentorDetail) models.Participant {
	return models.Participant{
		ProfileID:      mentor.ID,
		UserID:         mentor.UserID,
		Name:           mentor.User.Name,
		Email:          mentor.User.Email,
		PhotoURL:       mentor.User.PhotoURL,
		Specialization: mentor.Specialization,
	}
}
