package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-slots/internal/audit"
	"github.com/BruksfildServices01/booking-slots/internal/clock"
	"github.com/BruksfildServices01/booking-slots/internal/config"
	domain "github.com/BruksfildServices01/booking-slots/internal/domain/availability"
	"github.com/BruksfildServices01/booking-slots/internal/events"
	"github.com/BruksfildServices01/booking-slots/internal/handlers"
	infraRepo "github.com/BruksfildServices01/booking-slots/internal/infra/repository"
	"github.com/BruksfildServices01/booking-slots/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/booking-slots/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/booking-slots/internal/usecase/availability"
	ucCatalog "github.com/BruksfildServices01/booking-slots/internal/usecase/catalog"
)

// Infra carries the process-wide collaborators built in main.
type Infra struct {
	Logger    *zap.Logger
	Audit     *audit.Dispatcher
	Cache     domain.SlotCache
	Publisher events.Publisher
	Clock     clock.Clock

	// Ready reports dependency health for /health.
	Ready func() error
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(infra.Logger))
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)

	effects := ucAppointment.Effects{
		Cache:     infra.Cache,
		Audit:     infra.Audit,
		Publisher: infra.Publisher,
		Clock:     infra.Clock,
		Logger:    infra.Logger,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailabilityUC := ucAvailability.NewGetAvailability(availabilityRepo, infra.Cache, infra.Logger)
	ruleEditorUC := ucAvailability.NewRuleEditor(availabilityRepo, infra.Cache, infra.Audit, infra.Logger)

	commitBookingUC := ucAppointment.NewCommitBooking(appointmentRepo, getAvailabilityUC, effects)
	confirmUC := ucAppointment.NewConfirmAppointment(appointmentRepo, effects)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, effects)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, effects)
	listUC := ucAppointment.NewListAppointments(appointmentRepo)

	catalogUC := ucCatalog.New(catalogRepo, infra.Audit, infra.Logger)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, catalogUC, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, infra.Logger)
	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC)
	rulesHandler := handlers.NewRulesHandler(ruleEditorUC)
	catalogHandler := handlers.NewCatalogHandler(catalogUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(infraRepo.NewAuditLogGormRepository(db), availabilityRepo)

	appointmentHandler := handlers.NewAppointmentHandler(
		commitBookingUC,
		confirmUC,
		cancelUC,
		completeUC,
		listUC,
		infra.Clock,
	)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		if infra.Ready != nil {
			if err := infra.Ready(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ---- public ----
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/availability", availabilityHandler.Get)
		api.GET("/businesses/:slug/services", catalogHandler.ListServices)
		api.GET("/businesses/:slug/employees", catalogHandler.ListEmployees)

		// ---- authenticated ----
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		{
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/me/resources/:id/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/resources/:id/calendar.ics", appointmentHandler.Calendar)
			secured.GET("/me/resources/:id/report.xlsx", appointmentHandler.Report)

			secured.GET("/me/resources/:id/rules", rulesHandler.ListRules)
			secured.POST("/me/resources/:id/rules", rulesHandler.CreateRule)
			secured.PUT("/me/rules/:id", rulesHandler.UpdateRule)
			secured.DELETE("/me/rules/:id", rulesHandler.DeleteRule)

			secured.GET("/me/resources/:id/blocked-dates", rulesHandler.ListBlockedDates)
			secured.POST("/me/resources/:id/blocked-dates", rulesHandler.AddBlockedDate)
			secured.DELETE("/me/blocked-dates/:id", rulesHandler.RemoveBlockedDate)

			secured.GET("/me/resources/:id/audit-logs", auditLogsHandler.List)

			secured.POST("/me/employees", catalogHandler.CreateEmployee)
			secured.POST("/me/services", catalogHandler.CreateService)
			secured.PUT("/me/services/:id/employees/:employeeId", catalogHandler.AssignEmployee)
			secured.DELETE("/me/services/:id/employees/:employeeId", catalogHandler.UnassignEmployee)
		}
	}
}
