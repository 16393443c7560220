package main

import (
	"log"

	"github.com/codedocs/board-manager/internal/config"
	"github.com/codedocs/board-manager/internal/constants"
	"github.com/codedocs/board-manager/internal/database"
	"github.com/codedocs/board-manager/internal/handlers"
	"github.com/codedocs/board-manager/internal/middleware"
	"github.com/codedocs/board-manager/internal/realtime"
	"github.com/codedocs/board-manager/internal/repository"
	"github.com/codedocs/board-manager/internal/services"
	"github.com/codedocs/board-manager/internal/token"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	var zapLogger *zap.Logger
	if cfg.GinMode == "release" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatalw("failed to run migrations", "error", err)
	}

	db := database.GetDB()
	boardRepo := repository.NewBoardRepository(db)
	accessRepo := repository.NewAccessRepository(db)
	nodeRepo := repository.NewNodeRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	userRepo := repository.NewUserRepository(db)

	tokens := token.NewJWTManager(cfg.AuthSecret, cfg.TokenTTL)

	authService := services.NewAuthService(userRepo)
	boardService := services.NewBoardService(boardRepo, accessRepo, columnRepo)

	registry := realtime.NewRegistry()
	engine := realtime.NewEngine(realtime.EngineDeps{
		Resolver:    tokens,
		Registry:    registry,
		Broadcaster: realtime.NewRoomBroadcaster(registry),
		Boards:      boardRepo,
		Accesses:    accessRepo,
		Nodes:       nodeRepo,
		Columns:     columnRepo,
		Users:       userRepo,
		Logger:      logger,
	})

	authHandler := handlers.NewAuthHandler(authService, tokens)
	boardHandler := handlers.NewBoardHandler(boardService)
	wsHandler := handlers.NewWSHandler(engine, logger)

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // username (empty for default user)
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logger.Fatalw("failed to create redis store", "error", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.GET("/token", middleware.RequireAuth(), authHandler.GetBoardToken)
		}

		// Board routes (protected)
		boards := api.Group("/boards")
		boards.Use(middleware.RequireAuth())
		{
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("", boardHandler.ListBoards)
			boards.DELETE("/:id", middleware.RequireBoardAccess(), middleware.RequireBoardOwner(), boardHandler.DeleteBoard)
			boards.POST("/:id/link", middleware.RequireBoardAccess(), boardHandler.OpenBoard)
			boards.POST("/:id/leave", middleware.RequireBoardAccess(), boardHandler.LeaveBoard)
			boards.GET("/:id/columns", middleware.RequireBoardAccess(), boardHandler.GetBoardColumns)
		}
	}

	// Board sessions authenticate with the link token, not the cookie
	// session, so the route stays outside the /api group.
	r.GET("/ws/boards/:board_id/:token", wsHandler.Connect)

	logger.Infow("server starting", "addr", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatalw("server exited", "error", err)
	}
}
