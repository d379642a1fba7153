package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"styllobarber-pdv/internal/config"
	"styllobarber-pdv/internal/handler"
	"styllobarber-pdv/internal/logging"
	"styllobarber-pdv/internal/middleware"
	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"
	"styllobarber-pdv/internal/service"
	"styllobarber-pdv/internal/ws"
	"styllobarber-pdv/pkg/database"
	"styllobarber-pdv/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	log := logging.SetupLogging(cfg.LogLevel)
	if envErr != nil {
		log.Warn(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Database unavailable")
	}
	if cfg.DBAutoMigrate {
		err := db.AutoMigrate(
			&model.Privilege{}, &model.Role{}, &model.Profile{},
			&model.Service{}, &model.Appointment{},
			&model.Category{}, &model.Transaction{},
			&model.CommissionConfig{}, &model.CashFlowMovement{},
		)
		if err != nil {
			log.WithError(err).Fatal("AutoMigrate failed")
		}
	}

	// 3. Seed default privileges, roles, and admin profile
	seedPrivilegesRolesAndAdmin(context.Background(), db, cfg, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(log, 0)
	go wsHub.Run(ctx)

	// 5. Dependency Injection (Wiring Layers)
	txRepo := repository.NewTransactionRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	commissionRepo := repository.NewCommissionConfigRepo(db)
	cashFlowRepo := repository.NewCashFlowRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	serviceRepo := repository.NewServiceCatalogRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	pdvService := service.NewPDVService(service.PDVRepositories{
		Transactions: txRepo,
		Categories:   categoryRepo,
		Profiles:     profileRepo,
		Commissions:  commissionRepo,
		CashFlow:     cashFlowRepo,
		Appointments: appointmentRepo,
		Services:     serviceRepo,
	}, service.PDVOptions{
		DefaultCommissionPct: cfg.DefaultCommissionPct,
		Location:             cfg.Location,
		Notifier:             wsHub,
	}, log)
	dashService := service.NewDashboardService(cashFlowRepo, txRepo, cfg.Location)
	authService := service.NewAuthService(profileRepo, tokens, wsHub)
	profileService := service.NewProfileService(profileRepo, privilegeRepo, roleRepo)
	commissionService := service.NewCommissionService(commissionRepo, profileRepo)
	catalogService := service.NewCatalogService(serviceRepo, categoryRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo)

	refresher := service.NewStatsRefresher(pdvService, wsHub, cfg.StatsRefreshInterval, log)
	go refresher.Run(ctx)

	pdvHandler := handler.NewPDVHandler(pdvService, cfg.Location)
	dashHandler := handler.NewDashboardHandler(dashService, cfg.Location)
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	roleHandler := handler.NewRoleHandler(roleRepo, privilegeRepo)
	commissionHandler := handler.NewCommissionHandler(commissionService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "StylloBarber PDV v1.0",
	})

	app.Use(logger.New(logger.Config{Output: log.Writer()}))
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	api := app.Group("/api/v1")
	requireAuth := middleware.RequireAuth(tokens, profileRepo)

	// Public auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", requireAuth, authHandler.Heartbeat)

	protected := api.Group("", requireAuth)

	// PDV
	pdv := protected.Group("/pdv")
	pdv.Post("/transactions", middleware.RequirePrivilege(model.PrivTransactionCreate), pdvHandler.RecordTransaction)
	pdv.Post("/transactions/validate", middleware.RequirePrivilege(model.PrivTransactionCreate), pdvHandler.ValidateTransaction)
	pdv.Get("/transactions/recent", middleware.RequirePrivilege(model.PrivTransactionView), pdvHandler.GetRecentHistory)
	pdv.Post("/transactions/:id/cancel", middleware.RequirePrivilege(model.PrivTransactionCancel), pdvHandler.CancelTransaction)
	pdv.Get("/stats/daily", middleware.RequirePrivilege(model.PrivDashboardView), pdvHandler.GetDailyStats)

	// Dashboard and reports
	protected.Get("/dashboard/cash-flow", middleware.RequirePrivilege(model.PrivDashboardView), dashHandler.GetCashFlow)
	protected.Get("/dashboard/summary", middleware.RequirePrivilege(model.PrivDashboardView), dashHandler.GetCashFlowSummary)
	protected.Get("/reports/commissions", middleware.RequirePrivilege(model.PrivReportView), dashHandler.GetCommissionReport)

	// Commission config
	protected.Get("/commissions/config", middleware.RequireAnyPrivilege(model.PrivCommissionManage, model.PrivReportView), commissionHandler.GetConfigs)
	protected.Put("/commissions/config", middleware.RequirePrivilege(model.PrivCommissionManage), commissionHandler.SetPercentage)

	// Catalog
	protected.Get("/services", catalogHandler.GetServices)
	protected.Post("/services", middleware.RequirePrivilege(model.PrivCatalogManage), catalogHandler.CreateService)
	protected.Get("/categories", catalogHandler.GetCategories)

	// Appointments
	protected.Get("/appointments", middleware.RequirePrivilege(model.PrivAppointmentView), appointmentHandler.GetAppointments)
	protected.Get("/appointments/:id", middleware.RequirePrivilege(model.PrivAppointmentView), appointmentHandler.GetAppointment)

	// Profile management
	protected.Get("/profiles", middleware.RequirePrivilege(model.PrivProfileView), profileHandler.GetProfiles)
	protected.Get("/profiles/:id", middleware.RequirePrivilege(model.PrivProfileView), profileHandler.GetProfile)
	protected.Post("/profiles", middleware.RequirePrivilege(model.PrivProfileManage), profileHandler.CreateProfile)
	protected.Put("/profiles/:id", middleware.RequirePrivilege(model.PrivProfileManage), profileHandler.UpdateProfile)
	protected.Delete("/profiles/:id", middleware.RequirePrivilege(model.PrivProfileManage), profileHandler.DeleteProfile)
	protected.Put("/profiles/:id/privileges", middleware.RequirePrivilege(model.PrivProfileManage), profileHandler.UpdateProfilePrivileges)

	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Panic("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles and the admin
// profile if they don't exist.
func seedPrivilegesRolesAndAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.WithError(err).Warn("Failed to seed privileges")
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		log.WithError(err).Warn("Failed to seed roles")
	}

	email := strings.ToLower(cfg.AdminEmail)
	_, err := profileRepo.FindByEmail(ctx, email)
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithError(err).Warn("Failed to look up admin profile")
		return
	}

	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err != nil {
		log.WithError(err).Warn("Admin role missing, skipping admin profile")
		return
	}

	admin := &model.Profile{
		Email:      &email,
		FullName:   "Administrador",
		RoleCode:   model.RoleAdmin,
		IsActive:   true,
		Privileges: adminRole.Privileges,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		log.WithError(err).Warn("Failed to hash admin password")
		return
	}
	if err := profileRepo.Create(ctx, admin); err != nil {
		log.WithError(err).Warn("Failed to create admin profile")
		return
	}
	log.WithField("email", email).Info("Admin profile created")
}
