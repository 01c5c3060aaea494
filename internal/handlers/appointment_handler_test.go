package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
	"github.com/RamChoudhary007/ScholarGuide/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubAppointmentService struct {
	createResult     *models.AppointmentDetail
	createErr        error
	listResult       []models.AppointmentDetail
	listErr          error
	transitionResult *models.Appointment
	transitionErr    error

	lastUserID        int64
	lastRole          string
	lastStatus        string
	lastAppointmentID int64
	lastCreateInput   services.CreateAppointmentInput
}

func (s *stubAppointmentService) CreateAppointment(_ context.Context, userID int64, input services.CreateAppointmentInput) (*models.AppointmentDetail, error) {
	s.lastUserID = userID
	s.lastCreateInput = input
	return s.createResult, s.createErr
}

func (s *stubAppointmentService) ListAppointments(_ context.Context, userID int64, role, status string) ([]models.AppointmentDetail, error) {
	s.lastUserID = userID
	s.lastRole = role
	s.lastStatus = status
	return s.listResult, s.listErr
}

func (s *stubAppointmentService) TransitionStatus(_ context.Context, userID int64, role string, appointmentID int64, requestedStatus string) (*models.Appointment, error) {
	s.lastUserID = userID
	s.lastRole = role
	s.lastAppointmentID = appointmentID
	s.lastStatus = requestedStatus
	return s.transitionResult, s.transitionErr
}

func newAppointmentTestApp(service *stubAppointmentService, role string) *fiber.App {
	handler := &AppointmentHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "10")
		c.Locals("role", role)
		return c.Next()
	})
	app.Post("/api/appointments", handler.Create)
	app.Get("/api/appointments", handler.List)
	app.Put("/api/appointments/accept/:id", handler.Accept)
	app.Put("/api/appointments/cancel/:id", handler.Cancel)
	return app
}

func TestCreateAppointmentReturnsCreated(t *testing.T) {
	service := &stubAppointmentService{
		createResult: &models.AppointmentDetail{
			Appointment: models.Appointment{ID: 3, Status: models.AppointmentPending},
		},
	}
	app := newAppointmentTestApp(service, models.RoleStudent)

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(`{
		"mentor_id": 2,
		"date": "2026-09-14",
		"time": "10:00",
		"duration": 60,
		"purpose": "Mock interview"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastUserID != 10 {
		t.Fatalf("expected user id 10, got %d", service.lastUserID)
	}
	if service.lastCreateInput.MentorID != 2 || service.lastCreateInput.DurationMinutes != 60 {
		t.Fatalf("unexpected input: %+v", service.lastCreateInput)
	}

	var body models.AppointmentDetail
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != models.AppointmentPending {
		t.Fatalf("expected pending, got %q", body.Status)
	}
}

func TestCreateAppointmentForbiddenForMentors(t *testing.T) {
	service := &stubAppointmentService{}
	app := newAppointmentTestApp(service, models.RoleMentor)

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(`{"mentor_id": 2}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestCreateAppointmentConflictMapsTo409(t *testing.T) {
	service := &stubAppointmentService{createErr: services.ErrConflict}
	app := newAppointmentTestApp(service, models.RoleStudent)

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(`{
		"mentor_id": 2,
		"date": "2026-09-14",
		"time": "10:00",
		"duration": 60,
		"purpose": "Mock interview"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestListAppointmentsRejectsUnknownStatusFilter(t *testing.T) {
	service := &stubAppointmentService{}
	app := newAppointmentTestApp(service, models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/appointments?status=postponed", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListAppointmentsPassesStatusFilter(t *testing.T) {
	service := &stubAppointmentService{}
	app := newAppointmentTestApp(service, models.RoleMentor)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/appointments?status=pending", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastStatus != models.AppointmentPending || service.lastRole != models.RoleMentor {
		t.Fatalf("unexpected filter: status=%q role=%q", service.lastStatus, service.lastRole)
	}
}

func TestAcceptAppointmentPassesStatus(t *testing.T) {
	service := &stubAppointmentService{
		transitionResult: &models.Appointment{ID: 7, Status: models.AppointmentAccepted},
	}
	app := newAppointmentTestApp(service, models.RoleMentor)

	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/api/appointments/accept/7", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastAppointmentID != 7 || service.lastStatus != models.AppointmentAccepted {
		t.Fatalf("unexpected transition call: id=%d status=%q", service.lastAppointmentID, service.lastStatus)
	}
}

func TestAcceptAppointmentInvalidTransitionMapsTo422(t *testing.T) {
	service := &stubAppointmentService{transitionErr: services.ErrInvalidStateTransition}
	app := newAppointmentTestApp(service, models.RoleMentor)

	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/api/appointments/accept/7", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestCancelAppointmentForbiddenMapsTo403(t *testing.T) {
	service := &stubAppointmentService{transitionErr: services.ErrForbidden}
	app := newAppointmentTestApp(service, models.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/api/appointments/cancel/7", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestTransitionRejectsBadAppointmentID(t *testing.T) {
	service := &stubAppointmentService{}
	app := newAppointmentTestApp(service, models.RoleMentor)

	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/api/appointments/accept/abc", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
