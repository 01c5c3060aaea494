package routes

import (
	"github.com/RamChoudhary007/ScholarGuide/internal/config"
	"github.com/gofiber/fiber/v2"
)

type docsEndpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Auth   string `json:"auth"`
	Desc   string `json:"description"`
}

var docsEndpoints = []docsEndpoint{
	{"POST", "/api/auth/register", "none", "Create an account and receive a token"},
	{"POST", "/api/auth/login", "none", "Exchange credentials for a token"},
	{"GET", "/api/auth/me", "bearer", "Current user with role profile"},
	{"PUT", "/api/auth/me", "bearer", "Partial update of name, email, phone, bio"},
	{"POST", "/api/auth/me/photo", "bearer", "Upload a profile photo"},
	{"GET", "/api/users", "none", "List all accounts without credentials"},
	{"GET", "/api/students", "none", "List student profiles"},
	{"GET", "/api/students/me", "bearer", "Own student profile"},
	{"PUT", "/api/students/me", "bearer", "Partial update of skills and education"},
	{"GET", "/api/students/:id", "none", "Student profile by id"},
	{"GET", "/api/mentors", "none", "Search mentors with pagination"},
	{"GET", "/api/mentors/me", "bearer", "Own mentor profile"},
	{"PUT", "/api/mentors/me", "bearer", "Partial update of mentor profile"},
	{"GET", "/api/mentors/recommended", "bearer", "Mentors ranked by skill match"},
	{"GET", "/api/mentors/:id", "none", "Mentor profile by id"},
	{"GET", "/api/mentors/:id/reviews", "none", "Reviews for a mentor"},
	{"POST", "/api/appointments", "bearer", "Book an appointment with a mentor"},
	{"GET", "/api/appointments", "bearer", "Own appointments, optionally by status"},
	{"PUT", "/api/appointments/accept/:id", "bearer", "Mentor accepts a pending appointment"},
	{"PUT", "/api/appointments/reject/:id", "bearer", "Mentor rejects a pending appointment"},
	{"PUT", "/api/appointments/complete/:id", "bearer", "Mentor completes an accepted appointment"},
	{"PUT", "/api/appointments/cancel/:id", "bearer", "Student cancels an appointment"},
	{"POST", "/api/reviews", "bearer", "Review a mentor after a completed appointment"},
	{"GET", "/api/v1/ws", "bearer", "Websocket stream of appointment status events"},
}

// RegisterDocsRoutes serves a machine-readable endpoint index. Only mounted in
// development when ENABLE_API_DOCS is set.
func RegisterDocsRoutes(app *fiber.App, cfg *config.Config) {
	if !cfg.DocsEnabled() {
		return
	}

	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":      "ScholarGuide API",
			"endpoints": docsEndpoints,
		})
	})
}
