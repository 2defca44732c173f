// Package server contains the HTTP handlers of the recruitment portal.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/RockyKGFV/2201CS78-Faculty-Recruitment/docs" // swagger docs
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/bootstrap"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/cache"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/config"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/featureflags"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/mail"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/notifications"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/repository"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/service"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	signupLimit        = middleware.RateLimitRule{Resource: "signup", Limit: 10, Window: 10 * time.Minute}
	loginLimit         = middleware.RateLimitRule{Resource: "login", Limit: 10, Window: 5 * time.Minute}
	resetLimit         = middleware.RateLimitRule{Resource: "reset", Limit: 5, Window: 15 * time.Minute, Policy: middleware.FailClosed}
	resetPasswordLimit = middleware.RateLimitRule{Resource: "reset_password", Limit: 10, Window: 15 * time.Minute}
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	views          *Views
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	subscriberDone <-chan struct{}

	sessions    *session.Manager
	flags       *featureflags.Registry
	limiter     *middleware.RateLimiter
	notifier    *notifications.Notifier
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository

	auth    *service.AuthService
	reset   *service.ResetService
	apps    *service.ApplicationService
	uploads *service.UploadService
	photos  *service.PhotoService
	summary *service.SummaryService
}

// NewServer connects to the database and Redis, applies the schema and
// builds the configured mailer.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	opts := bootstrap.Options{ApplySchema: true}
	if cfg.Env == "development" {
		opts.DemoApplicants = cfg.DevDemoApplicants
	}
	db, rdb, err := bootstrap.InitRuntime(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	mailer, err := mail.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}
	return NewServerWithDeps(cfg, db, rdb, mailer)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// A nil Redis client falls back to in-process session and token stores.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mailer mail.Mailer) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, errors.New("server: config and database are required")
	}
	if mailer == nil {
		return nil, errors.New("server: mailer is required")
	}

	views := NewViews()
	if err := views.Load(); err != nil {
		return nil, fmt.Errorf("load views: %w", err)
	}

	var (
		store  session.Store
		tokens service.TokenStore
	)
	if redisClient != nil {
		store = session.NewRedisStore(redisClient)
		tokens = service.NewRedisTokenStore(redisClient)
	} else {
		store = session.NewMemoryStore()
		tokens = service.NewMemoryTokenStore()
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	flags := featureflags.NewRegistry(cfg.FeatureFlags)
	notifier := notifications.NewNotifier(redisClient)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		views:          views,
		promMiddleware: middleware.InitMetrics("faculty-recruitment"),
		sessions:       session.NewManager(store, time.Duration(cfg.SessionTTLHours)*time.Hour, cfg.IsProduction()),
		flags:          flags,
		limiter:        middleware.NewRateLimiter(redisClient, cfg.RateLimitEnabled),
		notifier:       notifier,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		auth:           service.NewAuthService(userRepo, flags),
		reset: service.NewResetService(userRepo, tokens, mailer, store, service.ResetConfig{
			Secret:  cfg.SessionSecret,
			TTL:     time.Duration(cfg.ResetTokenTTLMinutes) * time.Minute,
			BaseURL: cfg.PublicBaseURL,
		}),
		apps:    service.NewApplicationService(repository.NewApplicationRepository(db), notifier),
		uploads: service.NewUploadService(cfg),
		photos:  service.NewPhotoService(),
		summary: service.NewSummaryService(profileRepo, repository.NewSummaryRepository(db), flags,
			time.Duration(cfg.SummaryCacheTTLSeconds)*time.Second),
	}
	return s, nil
}

// ReloadFlags swaps the feature flag set, typically after a config reload.
func (s *Server) ReloadFlags(raw string) {
	m := s.flags.Reload(raw)
	middleware.Logger.Info("feature flags reloaded", slog.String("flags", m.String()))
}

// NewApp builds the Fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Faculty Recruitment Portal",
		Views:        s.views,
		ErrorHandler: s.handleError,
		// every page 8 document at the size cap, plus form fields
		BodyLimit: int(s.uploads.MaxBytes())*(len(service.DocumentFields)+1) + 1<<20,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New(helmet.Config{
		// uploaded photos and documents are embedded in the print view
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:8000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(s.sessions.Handler())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", s.Home)

	app.Get("/signup", s.SignupPage)
	app.Post("/signup", s.limiter.Handler(signupLimit), s.Signup)
	app.Get("/login", s.LoginPage)
	app.Post("/login", s.limiter.Handler(loginLimit), s.Login)
	app.Get("/logout", s.Logout)

	app.Get("/reset", s.ResetPage)
	app.Post("/reset", s.limiter.Handler(resetLimit), s.RequestReset)
	app.Get("/reset-password/:token", s.ResetPasswordPage)
	app.Post("/reset-password/:token", s.limiter.Handler(resetPasswordLimit), s.ResetPassword)

	gated := middleware.SessionRequired(s.userRepo)

	forms := app.Group("/formpages", gated)
	forms.Get("/:page<int>", s.FormPage)
	forms.Post("/:page<int>", s.SubmitFormPage)

	app.Post("/upload", gated, s.Upload)
	app.Get("/printform", gated, s.PrintForm)

	app.Get(service.UploadURLPrefix+":name", gated, s.UploadedFile)
}

// handleError renders failures as an error page, or as JSON for clients
// that ask for it.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	message := "Internal Server Error"

	var fe *fiber.Error
	var appErr *models.AppError
	switch {
	case errors.As(err, &fe):
		status = fe.Code
		message = fe.Message
		err = &models.AppError{Code: codeForStatus(status), Message: fe.Message}
	case errors.As(err, &appErr):
		if appErr.Code != models.CodeInternal {
			message = appErr.Message
		}
	default:
		err = models.NewInternalError(err)
	}

	ctx := c.UserContext()
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(ctx, "request failed",
			slog.String("path", c.Path()), slog.Int("status", status), slog.String("error", err.Error()))
	} else {
		middleware.Logger.DebugContext(ctx, "request rejected",
			slog.String("path", c.Path()), slog.Int("status", status), slog.String("error", err.Error()))
	}

	if wantsJSON(c) {
		return models.RespondWithError(c, status, err)
	}
	rerr := c.Status(status).Render("error", fiber.Map{
		"Status":  status,
		"Title":   utils.StatusMessage(status),
		"Message": message,
		"Back":    backLink(c),
	})
	if rerr != nil {
		return c.Status(status).SendString(message)
	}
	return nil
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return models.CodeNotFound
	case fiber.StatusUnauthorized, fiber.StatusForbidden:
		return models.CodeUnauthorized
	case fiber.StatusConflict:
		return models.CodeConflict
	}
	if status < fiber.StatusInternalServerError {
		return models.CodeValidation
	}
	return models.CodeInternal
}

func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// backLink points the error page at the form the failed request came from.
func backLink(c *fiber.Ctx) string {
	path := c.Path()
	switch {
	case strings.HasPrefix(path, "/reset-password/"):
		return "/reset"
	case path == "/upload":
		return "/formpages/8"
	case c.Method() == fiber.MethodPost:
		return path
	}
	return ""
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.NewApp()

	if s.redis != nil {
		done, err := s.notifier.StartSubscriber(ctx, notifications.LogEvents(ctx))
		if err != nil {
			middleware.Logger.Warn("application event subscriber not started", slog.String("error", err.Error()))
		} else {
			s.subscriberDone = done
		}
	}

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.subscriberDone != nil {
		select {
		case <-s.subscriberDone:
		case <-ctx.Done():
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := cache.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
