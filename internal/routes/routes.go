package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amizade-app/companion-api/internal/cache"
	"github.com/amizade-app/companion-api/internal/config"
	"github.com/amizade-app/companion-api/internal/events"
	"github.com/amizade-app/companion-api/internal/handlers"
	infraRepo "github.com/amizade-app/companion-api/internal/infra/repository"
	"github.com/amizade-app/companion-api/internal/middleware"
	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/payments"
	"github.com/amizade-app/companion-api/internal/storage"
	ucSchedule "github.com/amizade-app/companion-api/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	slotCache := cache.NewSlotCache(
		cfg.RedisAddr,
		cfg.RedisPassword,
		time.Duration(cfg.SlotCacheTTLSecs)*time.Second,
	)

	publisher, err := events.NewPublisher(cfg.AMQPUrl, cfg.AMQPExchange)
	if err != nil {
		log.Warn("event publisher disabled", zap.Error(err))
	}
	dispatcher := events.NewDispatcher(db, publisher, log)

	checkout, err := payments.New(cfg.MPAccessToken)
	if err != nil {
		log.Warn("payments disabled", zap.Error(err))
	}

	photoStore := storage.NewPhotoStore(
		cfg.S3Region,
		cfg.S3AccessKey,
		cfg.S3SecretKey,
		cfg.S3Bucket,
		cfg.MediaBaseURL,
	)

	policy := ucSchedule.PolicyFromConfig(cfg)
	repairPolicy := ucSchedule.RepairPolicyFromConfig(cfg)

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	getAvailabilityUC := ucSchedule.NewGetAvailability(scheduleRepo)
	setWeeklyUC := ucSchedule.NewSetWeeklyAvailability(scheduleRepo, slotCache)
	setOverrideUC := ucSchedule.NewSetOverride(scheduleRepo, slotCache)
	getOpenSlotsUC := ucSchedule.NewGetOpenSlots(scheduleRepo, slotCache)

	reserveUC := ucSchedule.NewReserve(scheduleRepo, dispatcher, slotCache, policy)
	transitionUC := ucSchedule.NewTransitionBooking(scheduleRepo, dispatcher, slotCache)
	agendaUC := ucSchedule.NewListAgenda(scheduleRepo)

	createRequestUC := ucSchedule.NewCreateBookingRequest(scheduleRepo, dispatcher, policy)
	respondRequestUC := ucSchedule.NewRespondToBookingRequest(scheduleRepo, dispatcher, slotCache)
	listRequestsUC := ucSchedule.NewListRequests(scheduleRepo)

	integrityUC := ucSchedule.NewRunIntegrityCheck(scheduleRepo)
	cleanupUC := ucSchedule.NewCleanup(scheduleRepo, repairPolicy)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	companionHandler := handlers.NewCompanionHandler(db)
	offeringHandler := handlers.NewOfferingHandler(db)
	photoHandler := handlers.NewPhotoHandler(db, photoStore)

	availabilityHandler := handlers.NewAvailabilityHandler(
		getAvailabilityUC,
		setWeeklyUC,
		setOverrideUC,
		getOpenSlotsUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		reserveUC,
		transitionUC,
		agendaUC,
		scheduleRepo,
	)

	requestHandler := handlers.NewBookingRequestHandler(
		createRequestUC,
		respondRequestUC,
		listRequestsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(scheduleRepo)
	integrityHandler := handlers.NewIntegrityHandler(integrityUC, cleanupUC)
	paymentsHandler := handlers.NewPaymentsHandler(db, checkout)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/companions", companionHandler.List)
		api.GET("/companions/:id", companionHandler.Detail)
		api.GET("/companions/:id/slots", availabilityHandler.OpenSlots)

		api.POST("/payments/webhook", paymentsHandler.Webhook)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.POST("/me/photo", photoHandler.Upload)

			// status transitions resolve the actor from the token,
			// so clients, companions and admins share this route
			secured.PATCH("/bookings/:id/status", bookingHandler.Transition)

			// ------------------------------
			// CLIENT
			// ------------------------------
			client := secured.Group("/")
			client.Use(middleware.RequireRole(models.RoleClient))
			{
				client.POST("/bookings", bookingHandler.Reserve)
				client.GET("/bookings", bookingHandler.ListMine)
				client.POST("/bookings/:id/checkout", paymentsHandler.CreateCheckout)
				client.POST("/booking-requests", requestHandler.Create)
				client.GET("/booking-requests", requestHandler.ListMine)
			}

			// ------------------------------
			// COMPANION
			// ------------------------------
			companion := secured.Group("/me")
			companion.Use(middleware.RequireRole(models.RoleCompanion))
			{
				companion.GET("/offerings", offeringHandler.List)
				companion.POST("/offerings", offeringHandler.Create)
				companion.PATCH("/offerings/:id", offeringHandler.Update)

				companion.GET("/availability", availabilityHandler.Get)
				companion.PUT("/availability/weekly", availabilityHandler.PutWeekly)
				companion.PUT("/availability/overrides", availabilityHandler.PutOverride)

				companion.GET("/agenda", bookingHandler.AgendaByDate)
				companion.GET("/agenda/month", bookingHandler.AgendaByMonth)

				companion.GET("/booking-requests", requestHandler.ListForCompanion)
				companion.PATCH("/booking-requests/:id", requestHandler.Respond)

				companion.GET("/audit-logs", auditLogsHandler.List)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/integrity", integrityHandler.Run)
				admin.POST("/integrity/cleanup", integrityHandler.Cleanup)
			}
		}
	}
}
