package services

import (
	"context"
	"errors"
	"strings"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
	"github.com/RamChoudhary007/ScholarGuide/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type completedAppointmentChecker interface {
	HasCompletedBetween(ctx context.Context, studentID, mentorID int64) (bool, error)
}

type reviewLister interface {
	ListByMentorID(ctx context.Context, mentorID int64) ([]models.ReviewDetail, error)
}

type ReviewService struct {
	db              *pgxpool.Pool
	reviewRepo      reviewLister
	appointmentRepo completedAppointmentChecker
	studentRepo     studentProfileReader
	mentorRepo      mentorProfileReader
}

func NewReviewService(
	db *pgxpool.Pool,
	reviewRepo reviewLister,
	appointmentRepo completedAppointmentChecker,
	studentRepo studentProfileReader,
	mentorRepo mentorProfileReader,
) *ReviewService {
	return &ReviewService{
		db:              db,
		reviewRepo:      reviewRepo,
		appointmentRepo: appointmentRepo,
		studentRepo:     studentRepo,
		mentorRepo:      mentorRepo,
	}
}

type CreateReviewInput struct {
	MentorID int64
	Rating   int
	Comment  string
}

// CreateReview inserts the review and recomputes the mentor's mean rating in
// one transaction. Duplicate reviews by the same student are allowed; each
// one shifts the mean.
func (s *ReviewService) CreateReview(
	ctx context.Context,
	userID int64,
	input CreateReviewInput,
) (*models.Review, error) {
	if input.MentorID <= 0 || input.Rating < 1 || input.Rating > 5 {
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

	completed, err := s.appointmentRepo.HasCompletedBetween(ctx, student.ID, mentor.ID)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, ErrReviewNotAllowed
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Serialize concurrent reviews for one mentor so each recompute sees
	// the other's committed row.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", mentor.ID); err != nil {
		return nil, err
	}

	txReviewRepo := repository.NewReviewRepository(tx)
	txMentorRepo := repository.NewMentorProfileRepository(tx)

	review, err := txReviewRepo.Create(ctx, repository.CreateReviewInput{
		StudentID: student.ID,
		MentorID:  mentor.ID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
	})
	if err != nil {
		return nil, err
	}

	if err := txMentorRepo.RecalculateRating(ctx, mentor.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListReviewsForMentor(ctx context.Context, mentorID int64) ([]models.ReviewDetail, error) {
	if _, err := s.mentorRepo.GetByID(ctx, mentorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMentorNotFound
		}
		return nil, err
	}
	return s.reviewRepo.ListByMentorID(ctx, mentorID)
}
