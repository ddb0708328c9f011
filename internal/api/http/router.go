package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/americanreliabletech/support-portal/internal/api/http/handlers"
	"github.com/americanreliabletech/support-portal/internal/auth"
	"github.com/americanreliabletech/support-portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	AdminTickets   *handlers.AdminTicketsHandler
	UserTickets    *handlers.UserTicketsHandler
	Chat           *handlers.ChatHandler
	Intake         *handlers.IntakeHandler
	Users          *handlers.UsersHandler
	Profile        *handlers.ProfileHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	// Public marketing and intake surface.
	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Get("/tickets/track", cfg.Tickets.TrackTicket)
	api.Post("/chat", cfg.Chat.HandleTurn)
	api.Post("/chat/submit", cfg.Chat.SubmitTicket)
	api.Post("/otp/send", cfg.Chat.SendOTP)
	api.Post("/otp/verify", cfg.Chat.VerifyOTP)
	api.Post("/contact", cfg.Intake.SubmitContact)
	api.Post("/service-requests", cfg.Intake.SubmitServiceRequest)
	api.Post("/consultations", cfg.Intake.ScheduleConsultation)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	// Signed-in customer dashboard.
	me := api.Group("/me", cfg.AuthMiddleware.Handle, auth.RequireAuth())
	me.Get("/tickets", cfg.UserTickets.ListTickets)
	me.Get("/tickets/:id", cfg.UserTickets.GetTicket)
	me.Post("/tickets/:id/replies", cfg.UserTickets.AddReply)
	me.Get("/profile", cfg.Profile.GetProfile)
	me.Patch("/profile", cfg.Profile.UpdateProfile)
	me.Post("/profile/avatar", cfg.Profile.UploadAvatar)

	// Staff dashboard.
	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/tickets", cfg.AdminTickets.ListTickets)
	admin.Get("/tickets/:id", cfg.AdminTickets.GetTicket)
	admin.Patch("/tickets/:id/status", cfg.AdminTickets.UpdateStatus)
	admin.Patch("/tickets/:id/assignee", cfg.AdminTickets.AssignTech)
	admin.Post("/tickets/:id/replies", cfg.AdminTickets.AddReply)
	admin.Get("/technicians", cfg.AdminTickets.ListTechnicians)
}
