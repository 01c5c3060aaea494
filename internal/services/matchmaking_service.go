package services

import (
	"context"
	"sort"
	"strings"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
)

type MentorLister interface {
	ListAll(ctx context.Context) ([]models.MentorDetail, error)
}

type MatchmakingService struct {
	mentorRepo MentorLister
}

func NewMatchmakingService(mentorRepo MentorLister) *MatchmakingService {
	return &MatchmakingService{mentorRepo: mentorRepo}
}

// GetMatchedMentors ranks every mentor against the student's skills,
// highest score first, ties broken by rating.
func (s *MatchmakingService) GetMatchedMentors(
	ctx context.Context,
	student *models.StudentDetail,
	limit int,
) ([]models.MentorWithScore, error) {
	mentors, err := s.mentorRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.MentorWithScore, 0, len(mentors))
	for _, mentor := range mentors {
		matched = append(matched, models.MentorWithScore{
			MentorDetail: mentor,
			MatchScore:   calculateMatchScore(student, &mentor),
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].MatchScore == matched[j].MatchScore {
			return matched[i].Rating > matched[j].Rating
		}
		return matched[i].MatchScore > matched[j].MatchScore
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func calculateMatchScore(student *models.StudentDetail, mentor *models.MentorDetail) int {
	score := 0

	studentSkills := normalizeSkills(studentSkillList(student))
	for _, skill := range mentor.Skills {
		if _, ok := studentSkills[normalize(skill)]; ok {
			score += 25
		}
	}
	if _, ok := studentSkills[normalize(mentor.Specialization)]; ok {
		score += 30
	}

	if mentor.Rating > 4.0 {
		score += 20
	}
	if mentor.ReviewCount > 0 {
		score += 10
	}
	if len(mentor.WorkExperience) > 0 {
		score += 10
	}
	if len(mentor.Availability) > 0 {
		score += 5
	}

	return score
}

func studentSkillList(student *models.StudentDetail) []string {
	if student == nil {
		return nil
	}
	return student.Skills
}

func normalizeSkills(skills []string) map[string]struct{} {
	normalized := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		if trimmed := normalize(skill); trimmed != "" {
			normalized[trimmed] = struct{}{}
		}
	}
	return normalized
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
