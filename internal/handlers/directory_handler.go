package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
	"github.com/RamChoudhary007/ScholarGuide/internal/repository"
	"github.com/RamChoudhary007/ScholarGuide/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type userDirectoryRepository interface {
	List(ctx context.Context) ([]models.UserSummary, error)
}

type studentDirectoryRepository interface {
	List(ctx context.Context) ([]models.StudentDetail, error)
	GetByID(ctx context.Context, id int64) (*models.StudentDetail, error)
	GetByUserID(ctx context.Context, userID int64) (*models.StudentDetail, error)
}

type mentorDirectoryRepository interface {
	List(ctx context.Context, filter repository.MentorListFilter) ([]models.MentorDetail, int, error)
	GetByID(ctx context.Context, id int64) (*models.MentorDetail, error)
}

type mentorMatchmaker interface {
	GetMatchedMentors(ctx context.Context, student *models.StudentDetail, limit int) ([]models.MentorWithScore, error)
}

type DirectoryHandler struct {
	userRepo           userDirectoryRepository
	studentRepo        studentDirectoryRepository
	mentorRepo         mentorDirectoryRepository
	matchmakingService mentorMatchmaker
}

func NewDirectoryHandler(
	userRepo userDirectoryRepository,
	studentRepo studentDirectoryRepository,
	mentorRepo mentorDirectoryRepository,
	matchmakingService *services.MatchmakingService,
) *DirectoryHandler {
	return &DirectoryHandler{
		userRepo:           userRepo,
		studentRepo:        studentRepo,
		mentorRepo:         mentorRepo,
		matchmakingService: matchmakingService,
	}
}

func (h *DirectoryHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *DirectoryHandler) ListStudents(c *fiber.Ctx) error {
	students, err := h.studentRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch students"})
	}
	return c.JSON(fiber.Map{"students": students})
}

func (h *DirectoryHandler) GetStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	student, err := h.studentRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	return c.JSON(student)
}

func (h *DirectoryHandler) ListMentors(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	minRating := 0.0
	if raw := c.Query("min_rating"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 5 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "min_rating must be between 0 and 5"})
		}
		minRating = parsed
	}

	filter := repository.MentorListFilter{
		Search:         strings.TrimSpace(c.Query("search")),
		Specialization: strings.TrimSpace(c.Query("specialization")),
		MinRating:      minRating,
		Offset:         (page - 1) * limit,
		Limit:          limit,
	}

	mentors, total, err := h.mentorRepo.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch mentors"})
	}

	return c.JSON(fiber.Map{
		"mentors":    mentors,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *DirectoryHandler) GetMentor(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid mentor id"})
	}

	mentor, err := h.mentorRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch mentor"})
	}
	return c.JSON(mentor)
}

func (h *DirectoryHandler) GetRecommendedMentors(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if role, _ := c.Locals("role").(string); role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only students can request recommendations"})
	}

	student, err := h.studentRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch student profile"})
	}

	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	mentors, err := h.matchmakingService.GetMatchedMentors(c.Context(), student, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to match mentors"})
	}
	return c.JSON(fiber.Map{"mentors": mentors})
}
