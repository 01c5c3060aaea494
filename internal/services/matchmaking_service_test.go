package services

import (
	"context"
	"testing"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
)

type stubMentorLister struct {
	mentors []models.MentorDetail
}

func (s *stubMentorLister) ListAll(_ context.Context) ([]models.MentorDetail, error) {
	return s.mentors, nil
}

func TestGetMatchedMentorsRanksSkillOverlapFirst(t *testing.T) {
	lister := &stubMentorLister{
		mentors: []models.MentorDetail{
			{
				MentorProfile: models.MentorProfile{ID: 1, Specialization: "frontend", Skills: []string{"css"}},
				User:          models.UserSummary{Name: "NoOverlap"},
			},
			{
				MentorProfile: models.MentorProfile{
					ID:             2,
					Specialization: "backend",
					Skills:         []string{"Go", "postgres"},
					Rating:         4.5,
					ReviewCount:    3,
				},
				User: models.UserSummary{Name: "StrongMatch"},
			},
			{
				MentorProfile: models.MentorProfile{ID: 3, Skills: []string{"go"}},
				User:          models.UserSummary{Name: "PartialMatch"},
			},
		},
	}
	service := NewMatchmakingService(lister)

	student := &models.StudentDetail{
		StudentProfile: models.StudentProfile{Skills: []string{"go", "postgres", "backend"}},
	}

	matched, err := service.GetMatchedMentors(context.Background(), student, 0)
	if err != nil {
		t.Fatalf("GetMatchedMentors: %v", err)
	}
	if len(matched) != 3 {
		t.Fatalf("expected all mentors scored, got %d", len(matched))
	}

	if matched[0].User.Name != "StrongMatch" {
		t.Fatalf("expected StrongMatch first, got %q", matched[0].User.Name)
	}
	// 2 skill overlaps + specialization + rating>4 + reviews
	if matched[0].MatchScore != 25+25+30+20+10 {
		t.Fatalf("unexpected top score %d", matched[0].MatchScore)
	}
	if matched[1].User.Name != "PartialMatch" {
		t.Fatalf("expected PartialMatch second, got %q", matched[1].User.Name)
	}
	if matched[2].MatchScore != 0 {
		t.Fatalf("expected zero score for disjoint skills, got %d", matched[2].MatchScore)
	}
}

func TestGetMatchedMentorsTieBrokenByRating(t *testing.T) {
	lister := &stubMentorLister{
		mentors: []models.MentorDetail{
			{MentorProfile: models.MentorProfile{ID: 1, Skills: []string{"go"}, Rating: 3.0}, User: models.UserSummary{Name: "Lower"}},
			{MentorProfile: models.MentorProfile{ID: 2, Skills: []string{"go"}, Rating: 3.9}, User: models.UserSummary{Name: "Higher"}},
		},
	}
	service := NewMatchmakingService(lister)

	student := &models.StudentDetail{
		StudentProfile: models.StudentProfile{Skills: []string{"go"}},
	}

	matched, err := service.GetMatchedMentors(context.Background(), student, 0)
	if err != nil {
		t.Fatalf("GetMatchedMentors: %v", err)
	}
	if matched[0].User.Name != "Higher" {
		t.Fatalf("expected rating tiebreak, got %q first", matched[0].User.Name)
	}
}

func TestGetMatchedMentorsHonorsLimit(t *testing.T) {
	lister := &stubMentorLister{
		mentors: []models.MentorDetail{
			{MentorProfile: models.MentorProfile{ID: 1}},
			{MentorProfile: models.MentorProfile{ID: 2}},
			{MentorProfile: models.MentorProfile{ID: 3}},
		},
	}
	service := NewMatchmakingService(lister)

	matched, err := service.GetMatchedMentors(context.Background(), &models.StudentDetail{}, 2)
	if err != nil {
		t.Fatalf("GetMatchedMentors: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 mentors, got %d", len(matched))
	}
}
