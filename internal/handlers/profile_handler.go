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

type studentProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.StudentDetail, error)
}

type mentorProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.MentorDetail, error)
}

type ProfileHandler struct {
	studentRepo    studentProfileStore
	mentorRepo     mentorProfileStore
	profileService *services.ProfileService
}

func NewProfileHandler(
	studentRepo studentProfileStore,
	mentorRepo mentorProfileStore,
	profileService *services.ProfileService,
) *ProfileHandler {
	return &ProfileHandler{
		studentRepo:    studentRepo,
		mentorRepo:     mentorRepo,
		profileService: profileService,
	}
}

type updateStudentProfileRequest struct {
	Skills    *[]string           `json:"skills"`
	Education *[]models.Education `json:"education"`
}

type updateMentorProfileRequest struct {
	Specialization     *string                      `json:"specialization"`
	Skills             *[]string                    `json:"skills"`
	Education          *[]models.Education          `json:"education"`
	WorkExperience     *[]models.WorkExperience     `json:"work_experience"`
	CurrentlyWorkingAt *string                      `json:"currently_working_at"`
	Availability       *[]models.AvailabilityWindow `json:"availability"`
}

// parseProfileUserID reads the user id placed in locals by the auth middleware.
func parseProfileUserID(c *fiber.Ctx) (int64, error) {
	raw, _ := c.Locals("user_id").(string)
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errors.New("invalid user id in token")
	}
	return userID, nil
}

func (h *ProfileHandler) GetMyStudentProfile(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if role, _ := c.Locals("role").(string); role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only students have a student profile"})
	}

	profile, err := h.studentRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch student profile"})
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateMyStudentProfile(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if role, _ := c.Locals("role").(string); role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only students can update a student profile"})
	}

	var req updateStudentProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := validateSkills(req.Skills); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}
	if msg := validateEducation(req.Education); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	profile, err := h.profileService.UpdateStudentProfile(c.Context(), userID, repository.UpdateStudentProfileInput{
		Skills:    req.Skills,
		Education: req.Education,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student profile"})
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) GetMyMentorProfile(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if role, _ := c.Locals("role").(string); role != models.RoleMentor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only mentors have a mentor profile"})
	}

	profile, err := h.mentorRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch mentor profile"})
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateMyMentorProfile(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if role, _ := c.Locals("role").(string); role != models.RoleMentor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only mentors can update a mentor profile"})
	}

	var req updateMentorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := validateMentorUpdateRequest(&req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	profile, err := h.profileService.UpdateMentorProfile(c.Context(), userID, repository.UpdateMentorProfileInput{
		Specialization:     req.Specialization,
		Skills:             req.Skills,
		Education:          req.Education,
		WorkExperience:     req.WorkExperience,
		CurrentlyWorkingAt: req.CurrentlyWorkingAt,
		Availability:       req.Availability,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update mentor profile"})
	}
	return c.JSON(profile)
}

func validateMentorUpdateRequest(req *updateMentorProfileRequest) string {
	if req.Specialization != nil && strings.TrimSpace(*req.Specialization) == "" {
		return "specialization must not be empty"
	}
	if msg := validateSkills(req.Skills); msg != "" {
		return msg
	}
	if msg := validateEducation(req.Education); msg != "" {
		return msg
	}
	if req.Availability != nil {
		for _, window := range *req.Availability {
			if strings.TrimSpace(window.Day) == "" {
				return "availability entries need a day"
			}
		}
	}
	return ""
}
