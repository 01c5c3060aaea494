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

type AppointmentHandler struct {
	service appointmentApplicationService
}

type appointmentApplicationService interface {
	CreateAppointment(ctx context.Context, userID int64, input services.CreateAppointmentInput) (*models.AppointmentDetail, error)
	ListAppointments(ctx context.Context, userID int64, role, status string) ([]models.AppointmentDetail, error)
	TransitionStatus(ctx context.Context, userID int64, role string, appointmentID int64, requestedStatus string) (*models.Appointment, error)
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type createAppointmentRequest struct {
	MentorID        int64  `json:"mentor_id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration"`
	Purpose         string `json:"purpose"`
}

func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if role, _ := c.Locals("role").(string); role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only students can book appointments"})
	}

	var req createAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	appointment, err := h.service.CreateAppointment(c.Context(), userID, services.CreateAppointmentInput{
		MentorID:        req.MentorID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Purpose:         req.Purpose,
	})
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	role, _ := c.Locals("role").(string)

	status := c.Query("status")
	switch status {
	case "", models.AppointmentPending, models.AppointmentAccepted, models.AppointmentRejected,
		models.AppointmentCompleted, models.AppointmentCancelled:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status filter"})
	}

	appointments, err := h.service.ListAppointments(c.Context(), userID, role, status)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return c.JSON(fiber.Map{"appointments": appointments})
}

func (h *AppointmentHandler) Accept(c *fiber.Ctx) error {
	return h.transition(c, models.AppointmentAccepted)
}

func (h *AppointmentHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, models.AppointmentRejected)
}

func (h *AppointmentHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, models.AppointmentCompleted)
}

func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, models.AppointmentCancelled)
}

func (h *AppointmentHandler) transition(c *fiber.Ctx, status string) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	role, _ := c.Locals("role").(string)

	appointmentID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || appointmentID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	appointment, err := h.service.TransitionStatus(c.Context(), userID, role, appointmentID, status)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return c.JSON(appointment)
}

func mapAppointmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment request"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed"})
	case errors.Is(err, services.ErrStudentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student profile not found"})
	case errors.Is(err, services.ErrMentorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor not found"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "The mentor already has an appointment in that time slot"})
	case errors.Is(err, services.ErrInvalidStateTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Appointment cannot change to that status"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process appointment"})
	}
}
