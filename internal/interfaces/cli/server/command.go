package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"coursekit/internal/application/access"
	adminUsecases "coursekit/internal/application/admin/usecases"
	authUsecases "coursekit/internal/application/auth/usecases"
	courseUsecases "coursekit/internal/application/course/usecases"
	"coursekit/internal/infrastructure/auth"
	"coursekit/internal/infrastructure/cache"
	"coursekit/internal/infrastructure/config"
	"coursekit/internal/infrastructure/database"
	"coursekit/internal/infrastructure/email"
	"coursekit/internal/infrastructure/migration"
	"coursekit/internal/infrastructure/persistence/models"
	"coursekit/internal/infrastructure/persistence/seeds"
	"coursekit/internal/infrastructure/repository"
	httpRouter "coursekit/internal/interfaces/http"
	"coursekit/internal/interfaces/http/handlers"
	adminHandlers "coursekit/internal/interfaces/http/handlers/admin"
	"coursekit/internal/shared/logger"
	"coursekit/internal/shared/services/markdown"
	"coursekit/internal/shared/session"
)

var (
	env         string
	autoMigrate bool
	seedCatalog bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the CourseKit HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&seedCatalog, "seed", false, "Seed the demo course catalog on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			logger.Warn("auto-migration is enabled in production")
		}
		manager := migration.NewManager(env)
		if err := manager.Migrate(database.Get(),
			&models.UserModel{},
			&models.CourseModel{},
			&models.LessonModel{},
			&models.EnrollmentModel{},
		); err != nil {
			logger.Fatal("migration failed", "error", err)
		}
	}

	if seedCatalog {
		if err := seeds.SeedCatalog(database.Get()); err != nil {
			logger.Fatal("catalog seeding failed", "error", err)
		}
		logger.Info("catalog seeded")
	}

	redisClient, err := cache.NewRedisClient(context.Background(), &cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	log := logger.NewLogger()

	// Infrastructure services.
	tokens := auth.NewTokenService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.SessionExpHours)
	sessions := session.NewStore(tokens, cfg.Auth.Cookie)
	hasher := auth.NewBcryptHasher(cfg.Auth.Password.BcryptCost)
	magicLinks := cache.NewMagicLinkStore(redisClient, cfg.Auth.MagicLink)
	mailer := email.NewSMTPEmailService(cfg.Email, cfg.Server.BaseURL)
	renderer := markdown.NewService()

	// Repositories.
	userRepo := repository.NewUserRepository(database.Get(), log.Named("repo.user"))
	courseRepo := repository.NewCourseRepository(database.Get(), log.Named("repo.course"))
	enrollmentRepo := repository.NewEnrollmentRepository(database.Get(), log.Named("repo.enrollment"))

	resolver := access.NewResolver(enrollmentRepo, courseRepo, nil, log.Named("access"))

	// Usecases.
	requestMagicLinkUC := authUsecases.NewRequestMagicLinkUseCase(userRepo, magicLinks, mailer, log.Named("auth"))
	verifyMagicLinkUC := authUsecases.NewVerifyMagicLinkUseCase(userRepo, magicLinks, log.Named("auth"))
	passwordLoginUC := authUsecases.NewPasswordLoginUseCase(userRepo, hasher, log.Named("auth"))

	listCoursesUC := courseUsecases.NewListCoursesUseCase(courseRepo, log.Named("course"))
	getCourseUC := courseUsecases.NewGetCourseUseCase(courseRepo, log.Named("course"))
	getLessonUC := courseUsecases.NewGetLessonUseCase(courseRepo, resolver, renderer, log.Named("course"))
	getDashboardUC := courseUsecases.NewGetDashboardUseCase(enrollmentRepo, courseRepo, log.Named("course"))
	completeCourseUC := courseUsecases.NewCompleteCourseUseCase(enrollmentRepo, log.Named("course"))

	createUserUC := adminUsecases.NewCreateUserUseCase(userRepo, hasher, log.Named("admin"))
	listUsersUC := adminUsecases.NewListUsersUseCase(userRepo, log.Named("admin"))
	updateUserUC := adminUsecases.NewUpdateUserUseCase(userRepo, hasher, log.Named("admin"))
	createCourseUC := adminUsecases.NewCreateCourseUseCase(courseRepo, log.Named("admin"))
	updateCourseUC := adminUsecases.NewUpdateCourseUseCase(courseRepo, log.Named("admin"))
	grantEnrollmentUC := adminUsecases.NewGrantEnrollmentUseCase(enrollmentRepo, userRepo, courseRepo, mailer, log.Named("admin"))
	revokeEnrollmentUC := adminUsecases.NewRevokeEnrollmentUseCase(enrollmentRepo, log.Named("admin"))

	// HTTP surface.
	engine := httpRouter.NewRouter(&httpRouter.RouterConfig{
		ServerConfig: cfg.Server,
		Sessions:     sessions,
		Logger:       log.Named("http"),

		AuthHandler:      handlers.NewAuthHandler(requestMagicLinkUC, verifyMagicLinkUC, passwordLoginUC, sessions, userRepo, log.Named("handler.auth")),
		CourseHandler:    handlers.NewCourseHandler(listCoursesUC, getCourseUC, sessions, log.Named("handler.course")),
		LessonHandler:    handlers.NewLessonHandler(getLessonUC, completeCourseUC, sessions, log.Named("handler.lesson")),
		DashboardHandler: handlers.NewDashboardHandler(getDashboardUC, sessions, log.Named("handler.dashboard")),

		AdminUserHandler:       adminHandlers.NewUserHandler(createUserUC, listUsersUC, updateUserUC, sessions, log.Named("handler.admin.user")),
		AdminCourseHandler:     adminHandlers.NewCourseHandler(createCourseUC, updateCourseUC, sessions, log.Named("handler.admin.course")),
		AdminEnrollmentHandler: adminHandlers.NewEnrollmentHandler(grantEnrollmentUC, revokeEnrollmentUC, sessions, log.Named("handler.admin.enrollment")),
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
