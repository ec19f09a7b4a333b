package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aulaflex/tutor-scheduler/internal/audit"
	"github.com/aulaflex/tutor-scheduler/internal/config"
	"github.com/aulaflex/tutor-scheduler/internal/handlers"
	infraRepo "github.com/aulaflex/tutor-scheduler/internal/infra/repository"
	"github.com/aulaflex/tutor-scheduler/internal/middleware"
	ucBooking "github.com/aulaflex/tutor-scheduler/internal/usecase/booking"
	ucSchedule "github.com/aulaflex/tutor-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	logger *zap.Logger,
	auditDispatcher *audit.Dispatcher,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	createReservationUC := ucBooking.NewCreateReservation(
		reservationRepo,
		auditDispatcher,
	)

	respondReservationUC := ucBooking.NewRespondReservation(
		reservationRepo,
		auditDispatcher,
	)

	completeReservationUC := ucBooking.NewCompleteReservation(
		reservationRepo,
		auditDispatcher,
	)

	cancelReservationUC := ucBooking.NewCancelReservation(
		reservationRepo,
		auditDispatcher,
	)

	listReservationsUC := ucBooking.NewListReservations(reservationRepo)

	checkConflictUC := ucBooking.NewCheckScheduleConflict(reservationRepo)

	getScheduleUC := ucSchedule.NewGetSchedule(reservationRepo)
	replaceScheduleUC := ucSchedule.NewReplaceSchedule(
		reservationRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	scheduleHandler := handlers.NewScheduleHandler(
		getScheduleUC,
		replaceScheduleUC,
		checkConflictUC,
	)

	reservationHandler := handlers.NewReservationHandler(
		createReservationUC,
		respondReservationUC,
		completeReservationUC,
		cancelReservationUC,
		listReservationsUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// TEACHER SCHEDULE
			// ------------------------------
			teachers := secured.Group("/teachers")
			teachers.Use(middleware.RequireTeacher())
			{
				teachers.GET("/schedule", scheduleHandler.Get)
				teachers.PUT("/schedule", scheduleHandler.Update)
				teachers.GET("/schedule/conflicts", scheduleHandler.Conflicts)
			}

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			reservations := secured.Group("/reservations")
			{
				reservations.POST("", middleware.RequireStudent(), reservationHandler.Create)
				reservations.GET("", reservationHandler.List)
				reservations.PATCH("/:id/respond", middleware.RequireTeacher(), reservationHandler.Respond)
				reservations.PATCH("/:id/complete", reservationHandler.Complete)
				reservations.POST("/:id/cancel", reservationHandler.Cancel)
			}
		}
	}

	logger.Info("routes registered")
}
