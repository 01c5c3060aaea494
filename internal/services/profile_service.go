package services

import (
	"context"
	"errors"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
	"github.com/RamChoudhary007/ScholarGuide/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrEmailTaken = errors.New("email already in use")

type UserUpdater interface {
	UpdatePartial(ctx context.Context, id int64, input repository.UpdateUserInput) (*models.User, error)
}

type StudentProfileUpdater interface {
	UpdatePartial(ctx context.Context, userID int64, input repository.UpdateStudentProfileInput) (*models.StudentDetail, error)
}

type MentorProfileUpdater interface {
	UpdatePartial(ctx context.Context, userID int64, input repository.UpdateMentorProfileInput) (*models.MentorDetail, error)
}

type ProfileService struct {
	userRepo    UserUpdater
	studentRepo StudentProfileUpdater
	mentorRepo  MentorProfileUpdater
}

func NewProfileService(
	userRepo UserUpdater,
	studentRepo StudentProfileUpdater,
	mentorRepo MentorProfileUpdater,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		mentorRepo:  mentorRepo,
	}
}

// UpdateUser applies a partial update; an email collision surfaces as
// ErrEmailTaken via the unique constraint rather than a racy pre-check.
func (s *ProfileService) UpdateUser(ctx context.Context, userID int64, input repository.UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.UpdatePartial(ctx, userID, input)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) UpdateStudentProfile(ctx context.Context, userID int64, input repository.UpdateStudentProfileInput) (*models.StudentDetail, error) {
	return s.studentRepo.UpdatePartial(ctx, userID, input)
}

func (s *ProfileService) UpdateMentorProfile(ctx context.Context, userID int64, input repository.UpdateMentorProfileInput) (*models.MentorDetail, error) {
	return s.mentorRepo.UpdatePartial(ctx, userID, input)
}
