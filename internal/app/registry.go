package app

import (
	"time"

	"github.com/RNiyam/attendance-system/internal/attendance"
	"github.com/RNiyam/attendance-system/internal/auth"
	"github.com/RNiyam/attendance-system/internal/breaktime"
	"github.com/RNiyam/attendance-system/internal/config"
	"github.com/RNiyam/attendance-system/internal/dashboard"
	"github.com/RNiyam/attendance-system/internal/employee"
	"github.com/RNiyam/attendance-system/internal/face"
	"github.com/RNiyam/attendance-system/internal/messaging/kafka"
	"github.com/RNiyam/attendance-system/internal/middleware"
	"github.com/RNiyam/attendance-system/internal/otp"
	"github.com/RNiyam/attendance-system/internal/profile"
	"github.com/RNiyam/attendance-system/internal/rbac"
	"github.com/RNiyam/attendance-system/internal/rbac/infra"
	"github.com/RNiyam/attendance-system/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// faceOptions reports the distance ceiling as the threshold when the face
// service omits its own.
func faceOptions(cfg config.Config) face.Options {
	return face.Options{
		BaseURL:          cfg.Face.BaseURL,
		Timeout:          cfg.Face.Timeout,
		DefaultThreshold: cfg.Policy.MaxDistance,
	}
}

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	conns *Infra,
	logger *zap.Logger,
) error {
	db, gormDB, rdb := conns.DB, conns.GormDB, conns.Redis

	schedule, err := attendance.NewSchedule(cfg.Schedule)
	if err != nil {
		return err
	}

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	breakRepo := breaktime.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	profileRepo := profile.NewRepository(gormDB)

	// --- External collaborators ---
	faceClient := face.NewClient(faceOptions(cfg), logger)
	smsSender := otp.NewSender(otp.SMSOptions{
		APIURL:      cfg.SMS.APIURL,
		APIKey:      cfg.SMS.APIKey,
		SenderName:  cfg.SMS.Sender,
		CountryCode: "91",
		Timeout:     10 * time.Second,
	}, logger)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	otpService := otp.NewService(rdb, smsSender, logger)
	authService := auth.NewService(authRepo, otpService, auth.DefaultTokenOptions(cfg.JWTSecret), cfg.AdminEmails, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, faceClient, outboxRepo, profileRepo, rdb, logger)
	profileService := profile.NewService(profileRepo, otpService, nil, logger)
	engine := attendance.NewEngine(
		db,
		employee.NewAccessor(employeeRepo, logger),
		employeeRepo,
		attendanceRepo,
		faceClient,
		outboxRepo,
		attendance.EngineOptions{
			Policy:   attendance.PolicyFromConfig(cfg.Policy),
			Schedule: schedule,
		},
		logger,
	)
	attendanceService := attendance.NewService(engine, attendanceRepo, employeeRepo, logger)
	breakService := breaktime.NewService(db, breakRepo, employeeRepo, attendanceRepo, schedule, nil, logger)
	dashboardService := dashboard.NewService(dashboard.Deps{
		Ledger:     attendanceRepo,
		Breaks:     breakRepo,
		Employees:  employeeRepo,
		Roster:     employeeService,
		Projection: dashboard.NewProjection(rdb, schedule.Location, logger),
		Redis:      rdb,
		Schedule:   schedule,
	}, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), logger)
	breakHandler := breaktime.NewHandler(breakService, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	otpHandler := otp.NewHandler(otpService, logger)
	profileHandler := profile.NewHandler(profileService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	router.GET("/health", healthHandler(conns, faceClient))

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, cfg.JWTSecret)
		otp.RegisterRoutes(api, otpHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService, cfg.JWTSecret, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb, cfg.JWTSecret, logger)
		breaktime.RegisterRoutes(api, breakHandler, rbacService, cfg.JWTSecret, logger)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService, cfg.JWTSecret, logger)
		profile.RegisterRoutes(api, profileHandler, rbacService, cfg.JWTSecret, logger)

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		rbac.RegisterRoutes(authed, rbacHandler)
	}

	return nil
}
