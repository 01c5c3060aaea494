package services

import (
	"context"
	"errors"
	"testing"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
)

type stubCompletedChecker struct {
	completed bool
	studentID int64
	mentorID  int64
}

func (s *stubCompletedChecker) HasCompletedBetween(_ context.Context, studentID, mentorID int64) (bool, error) {
	s.studentID = studentID
	s.mentorID = mentorID
	return s.completed, nil
}

type stubReviewLister struct {
	reviews []models.ReviewDetail
}

func (s *stubReviewLister) ListByMentorID(_ context.Context, _ int64) ([]models.ReviewDetail, error) {
	return s.reviews, nil
}

func newReviewFixture(completed bool) (*ReviewService, *stubCompletedChecker) {
	students := &stubStudentReader{
		byUserID: map[int64]*models.StudentDetail{
			10: {StudentProfile: models.StudentProfile{ID: 1, UserID: 10}},
		},
	}
	mentors := &stubMentorReader{
		byID: map[int64]*models.MentorDetail{
			2: {MentorProfile: models.MentorProfile{ID: 2, UserID: 20}},
		},
	}
	checker := &stubCompletedChecker{completed: completed}
	service := NewReviewService(nil, &stubReviewLister{}, checker, students, mentors)
	return service, checker
}

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	service, _ := newReviewFixture(true)

	for _, rating := range []int{0, -1, 6} {
		_, err := service.CreateReview(context.Background(), 10, CreateReviewInput{
			MentorID: 2,
			Rating:   rating,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("rating %d: expected ErrInvalidInput, got %v", rating, err)
		}
	}
}

func TestCreateReviewRequiresCompletedAppointment(t *testing.T) {
	service, checker := newReviewFixture(false)

	_, err := service.CreateReview(context.Background(), 10, CreateReviewInput{
		MentorID: 2,
		Rating:   5,
		Comment:  "great mentor",
	})
	if !errors.Is(err, ErrReviewNotAllowed) {
		t.Fatalf("expected ErrReviewNotAllowed, got %v", err)
	}
	if checker.studentID != 1 || checker.mentorID != 2 {
		t.Fatalf("gate checked the wrong pair: student=%d mentor=%d", checker.studentID, checker.mentorID)
	}
}

func TestCreateReviewUnknownMentor(t *testing.T) {
	service, _ := newReviewFixture(true)

	_, err := service.CreateReview(context.Background(), 10, CreateReviewInput{
		MentorID: 99,
		Rating:   4,
	})
	if !errors.Is(err, ErrMentorNotFound) {
		t.Fatalf("expected ErrMentorNotFound, got %v", err)
	}
}

func TestCreateReviewUnknownStudent(t *testing.T) {
	service, _ := newReviewFixture(true)

	_, err := service.CreateReview(context.Background(), 55, CreateReviewInput{
		MentorID: 2,
		Rating:   4,
	})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}
