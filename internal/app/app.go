package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "schoolhub/docs"
	"schoolhub/internal/config"
	"schoolhub/internal/handlers"
	"schoolhub/internal/logger"
	"schoolhub/internal/repositories"
	"schoolhub/internal/routes"
	"schoolhub/internal/services"
	"schoolhub/internal/utils"
)

func Run() {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.Log.Development)
	if err != nil {
		panic("Failed to init logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalw("database open failed", "err", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warnw("database close failed", "err", err)
		}
	}()

	// === Redis (OTP state) ===
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = rdb.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(ctx); err != nil {
		log.Warnw("database ping failed", "err", err)
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warnw("redis ping failed", "addr", cfg.Redis.Addr, "err", err)
	}
	cancel()

	router, err := NewRouter(cfg, db, rdb, log)
	if err != nil {
		log.Fatalw("router setup failed", "err", err)
	}

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Infow("server started", "addr", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatalw("server stopped", "err", err)
	}
}

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(cfg *config.Config, db *sql.DB, rdb *redis.Client, log *zap.SugaredLogger) (*gin.Engine, error) {
	tokens, err := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return nil, err
	}

	// === Repos ===
	schoolRepo := repositories.NewSchoolRepository(db)
	adminRepo := repositories.NewAdminRepository(db, schoolRepo)
	teacherRepo := repositories.NewTeacherRepository(db, schoolRepo)
	studentRepo := repositories.NewStudentRepository(db, schoolRepo)
	otpRepo := repositories.NewOTPRepository(rdb)

	// === Services ===
	accounts := services.NewAccountDirectory(adminRepo, schoolRepo, teacherRepo, studentRepo)
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.DryRun,
		log,
	)
	otpService := services.NewOTPService(otpRepo, cfg.OTP.TTL)
	sessionService := services.NewSessionService(tokens)
	loginService := services.NewLoginService(accounts, authService, otpService, emailService, sessionService, log)
	resetService := services.NewPasswordResetService(accounts, otpService, emailService, authService, log)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(loginService, log)
	verifyHandler := handlers.NewVerifyHandler(loginService, log)
	passwordHandler := handlers.NewPasswordHandler(resetService, log)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, verifyHandler, passwordHandler, tokens)
	return router, nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
