package api

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	db "github.com/BitVault/BitVault-Backend/db/sqlc"
	"github.com/BitVault/BitVault-Backend/models"
	"github.com/BitVault/BitVault-Backend/providers/identity"
	"github.com/BitVault/BitVault-Backend/services/monitoring/logging"
	"github.com/BitVault/BitVault-Backend/services/redis"
	"github.com/BitVault/BitVault-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

type Server struct {
	router *gin.Engine
	store  *db.Store
	config *utils.Config
	logger *logging.Logger
	redis  *redis.RedisService
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	// The pool is created once here and drained on shutdown
	maxConns := c.DBMaxOpenConns
	if maxConns == 0 {
		maxConns = 5
	}
	conn.SetMaxOpenConns(maxConns)

	m, err := migrate.New(
		"file://db/migrations",
		utils.GetDBSource(c, c.DBName),
	)
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	s := db.NewStore(conn)
	g := gin.Default()
	l := logging.NewLogger()

	// Set up identity resolution
	IdentityController = identity.NewAuthProvider()

	var r *redis.RedisService
	if c.RedisHost != "" {
		r, err = redis.NewRedisService(&redis.RedisConfig{
			Host:     c.RedisHost,
			Port:     c.RedisPort,
			Password: c.RedisPassword,
		})
		if err != nil {
			// Volume tracking is best-effort, the server still runs without it
			l.Errorf("Unable to connect to Redis: %v", err)
		}
	}

	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	return &Server{
		router: g,
		store:  s,
		config: c,
		logger: l,
		redis:  r,
	}
}

func (s *Server) Start() {

	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to BitVault!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	Wallet{}.router(s)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%v", s.config.ServerPort),
		Handler: s.router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatalf("Unable to start server: %v", err)
		}
	}()

	// Drain in-flight requests before letting go of the pool, so a
	// commit that already started runs to completion.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Errorf("Server forced to shutdown: %v", err)
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Errorf("Unable to close Redis connection: %v", err)
		}
	}
	if err := s.store.DB.Close(); err != nil {
		s.logger.Errorf("Unable to close DB pool: %v", err)
	}
}
