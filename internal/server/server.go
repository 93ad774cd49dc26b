package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"nova-commerce/internal/config"
	custommiddleware "nova-commerce/internal/middleware"
	"nova-commerce/internal/repository"
	"nova-commerce/internal/service"
	"nova-commerce/internal/transport"
	"nova-commerce/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, uploads *upload.Store) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.ClientOrigin, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Uploaded product images are served straight off the local disk
	uploadServer := http.StripPrefix(cfg.Uploads.PathPrefix, http.FileServer(http.Dir(cfg.Uploads.Dir)))
	router.Get(cfg.Uploads.PathPrefix+"/*", func(w http.ResponseWriter, r *http.Request) {
		uploadServer.ServeHTTP(w, r)
	})

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	accountUserRepo := repository.NewAccountUserRepository(db)
	directoryUserRepo := repository.NewDirectoryUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Initialize services
	authService := service.NewAuthService(accountUserRepo, cfg.Admin, cfg.JWT)
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	userService := service.NewUserService(accountUserRepo, directoryUserRepo, orderRepo)
	orderService := service.NewOrderService(orderRepo)
	statsService := service.NewStatsService(statsRepo)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	categoryHandler := transport.NewCategoryHandler(catalogService, logger)
	productHandler := transport.NewProductHandler(catalogService, uploads, logger)
	userHandler := transport.NewUserHandler(userService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	statsHandler := transport.NewStatsHandler(statsService, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminOnly := func(next http.Handler) http.Handler {
		return authMiddleware(custommiddleware.RequireAdmin(logger)(next))
	}

	// Rate limit the credential endpoints
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	loginLimiter := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:login",
	}, logger)

	// Register routes
	authHandler.RegisterRoutes(router, authMiddleware, loginLimiter)
	categoryHandler.RegisterRoutes(router, adminOnly)
	productHandler.RegisterRoutes(router, adminOnly)
	userHandler.RegisterRoutes(router, adminOnly)
	orderHandler.RegisterRoutes(router, adminOnly)
	statsHandler.RegisterRoutes(router, adminOnly)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
