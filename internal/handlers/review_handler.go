package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
	"github.com/RamChoudhary007/ScholarGuide/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type ReviewHandler struct {
	service reviewApplicationService
}

type reviewApplicationService interface {
	CreateReview(ctx context.Context, userID int64, input services.CreateReviewInput) (*models.Review, error)
	ListReviewsForMentor(ctx context.Context, mentorID int64) ([]models.ReviewDetail, error)
}

func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	MentorID int64  `json:"mentor_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if role, _ := c.Locals("role").(string); role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only students can post reviews"})
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	review, err := h.service.CreateReview(c.Context(), userID, services.CreateReviewInput{
		MentorID: req.MentorID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return mapReviewError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewHandler) ListForMentor(c *fiber.Ctx) error {
	mentorID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || mentorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid mentor id"})
	}

	reviews, err := h.service.ListReviewsForMentor(c.Context(), mentorID)
	if err != nil {
		return mapReviewError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

func mapReviewError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "rating must be between 1 and 5"})
	case errors.Is(err, services.ErrStudentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student profile not found"})
	case errors.Is(err, services.ErrMentorNotFound), errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor not found"})
	case errors.Is(err, services.ErrReviewNotAllowed):
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"error": "You can review a mentor only after completing an appointment with them"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process review"})
	}
}
