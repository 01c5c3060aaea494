package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
	"github.com/RamChoudhary007/ScholarGuide/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type stubUserDirectory struct {
	users []models.UserSummary
}

func (s *stubUserDirectory) List(_ context.Context) ([]models.UserSummary, error) {
	return s.users, nil
}

type stubStudentDirectory struct {
	students []models.StudentDetail
	byID     map[int64]*models.StudentDetail
	byUserID map[int64]*models.StudentDetail
}

func (s *stubStudentDirectory) List(_ context.Context) ([]models.StudentDetail, error) {
	return s.students, nil
}

func (s *stubStudentDirectory) GetByID(_ context.Context, id int64) (*models.StudentDetail, error) {
	if detail, ok := s.byID[id]; ok {
		return detail, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubStudentDirectory) GetByUserID(_ context.Context, userID int64) (*models.StudentDetail, error) {
	if detail, ok := s.byUserID[userID]; ok {
		return detail, nil
	}
	return nil, pgx.ErrNoRows
}

type stubMentorDirectory struct {
	mentors    []models.MentorDetail
	total      int
	byID       map[int64]*models.MentorDetail
	lastFilter repository.MentorListFilter
}

func (s *stubMentorDirectory) List(_ context.Context, filter repository.MentorListFilter) ([]models.MentorDetail, int, error) {
	s.lastFilter = filter
	return s.mentors, s.total, nil
}

func (s *stubMentorDirectory) GetByID(_ context.Context, id int64) (*models.MentorDetail, error) {
	if detail, ok := s.byID[id]; ok {
		return detail, nil
	}
	return nil, pgx.ErrNoRows
}

type stubMatchmaker struct {
	matched     []models.MentorWithScore
	lastStudent *models.StudentDetail
	lastLimit   int
}

func (s *stubMatchmaker) GetMatchedMentors(_ context.Context, student *models.StudentDetail, limit int) ([]models.MentorWithScore, error) {
	s.lastStudent = student
	s.lastLimit = limit
	return s.matched, nil
}

func newDirectoryTestApp(students *stubStudentDirectory, mentors *stubMentorDirectory, matchmaker *stubMatchmaker, role string) *fiber.App {
	handler := &DirectoryHandler{
		studentRepo:        students,
		mentorRepo:         mentors,
		matchmakingService: matchmaker,
	}

	app := fiber.New()
	app.Get("/api/students", handler.ListStudents)
	app.Get("/api/students/:id", handler.GetStudent)
	app.Get("/api/mentors", handler.ListMentors)
	app.Get("/api/mentors/recommended", func(c *fiber.Ctx) error {
		c.Locals("user_id", "10")
		c.Locals("role", role)
		return handler.GetRecommendedMentors(c)
	})
	app.Get("/api/mentors/:id", handler.GetMentor)
	return app
}

func TestListUsersReturnsEveryRole(t *testing.T) {
	handler := &DirectoryHandler{userRepo: &stubUserDirectory{
		users: []models.UserSummary{
			{ID: 1, Name: "Asha", Email: "asha@example.com", Role: models.RoleStudent},
			{ID: 2, Name: "Ravi", Email: "ravi@example.com", Role: models.RoleMentor},
		},
	}}
	app := fiber.New()
	app.Get("/api/users", handler.ListUsers)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Users []models.UserSummary `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(body.Users))
	}
	if body.Users[0].Role != models.RoleStudent || body.Users[1].Role != models.RoleMentor {
		t.Fatalf("unexpected roles: %+v", body.Users)
	}
}

func TestListMentorsAppliesFiltersAndPagination(t *testing.T) {
	mentors := &stubMentorDirectory{
		mentors: []models.MentorDetail{
			{MentorProfile: models.MentorProfile{ID: 2, Specialization: "backend", Rating: 4.5}},
		},
		total: 11,
	}
	app := newDirectoryTestApp(&stubStudentDirectory{}, mentors, &stubMatchmaker{}, models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/mentors?search=go&specialization=backend&min_rating=4&page=2&limit=5", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if mentors.lastFilter.Search != "go" || mentors.lastFilter.Specialization != "backend" {
		t.Fatalf("unexpected filter: %+v", mentors.lastFilter)
	}
	if mentors.lastFilter.MinRating != 4 || mentors.lastFilter.Offset != 5 || mentors.lastFilter.Limit != 5 {
		t.Fatalf("unexpected paging: %+v", mentors.lastFilter)
	}

	var body struct {
		Mentors    []models.MentorDetail `json:"mentors"`
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Pagination.Total != 11 || body.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination meta: %+v", body.Pagination)
	}
}

func TestListMentorsRejectsBadMinRating(t *testing.T) {
	app := newDirectoryTestApp(&stubStudentDirectory{}, &stubMentorDirectory{}, &stubMatchmaker{}, models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/mentors?min_rating=9", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetMentorNotFound(t *testing.T) {
	app := newDirectoryTestApp(&stubStudentDirectory{}, &stubMentorDirectory{}, &stubMatchmaker{}, models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/mentors/99", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetStudentByID(t *testing.T) {
	students := &stubStudentDirectory{
		byID: map[int64]*models.StudentDetail{
			1: {
				StudentProfile: models.StudentProfile{ID: 1, UserID: 10, Skills: []string{"go"}},
				User:           models.UserSummary{ID: 10, Name: "Ann"},
			},
		},
	}
	app := newDirectoryTestApp(students, &stubMentorDirectory{}, &stubMatchmaker{}, models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/students/1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body models.StudentDetail
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.User.Name != "Ann" {
		t.Fatalf("expected Ann, got %q", body.User.Name)
	}
}

func TestGetRecommendedMentorsUsesStudentProfile(t *testing.T) {
	students := &stubStudentDirectory{
		byUserID: map[int64]*models.StudentDetail{
			10: {StudentProfile: models.StudentProfile{ID: 1, UserID: 10, Skills: []string{"go"}}},
		},
	}
	matchmaker := &stubMatchmaker{
		matched: []models.MentorWithScore{
			{MentorDetail: models.MentorDetail{MentorProfile: models.MentorProfile{ID: 2}}, MatchScore: 55},
		},
	}
	app := newDirectoryTestApp(students, &stubMentorDirectory{}, matchmaker, models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/mentors/recommended?limit=3", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if matchmaker.lastStudent == nil || matchmaker.lastStudent.ID != 1 {
		t.Fatalf("matchmaker got the wrong student: %+v", matchmaker.lastStudent)
	}
	if matchmaker.lastLimit != 3 {
		t.Fatalf("expected limit 3, got %d", matchmaker.lastLimit)
	}
}

func TestGetRecommendedMentorsForbiddenForMentors(t *testing.T) {
	app := newDirectoryTestApp(&stubStudentDirectory{}, &stubMentorDirectory{}, &stubMatchmaker{}, models.RoleMentor)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/mentors/recommended", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}
