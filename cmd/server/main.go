package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/eventengine/eventengine/internal/auth"
	"github.com/eventengine/eventengine/internal/config"
	"github.com/eventengine/eventengine/internal/database"
	"github.com/eventengine/eventengine/internal/handler"
	"github.com/eventengine/eventengine/internal/middleware"
	"github.com/eventengine/eventengine/internal/queue"
	"github.com/eventengine/eventengine/internal/repository"
	"github.com/eventengine/eventengine/internal/router"
	queue_publisher "github.com/eventengine/eventengine/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.ApplySchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("apply schema: %v", err)
	}
	cancel()
	log.Printf("database schema loaded")

	users := repository.NewUserRepo(db)
	nodes := repository.NewNodeRepo(db)
	attendance := repository.NewAttendanceRepo(db)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTTLMin, users)

	nodeHandler := handler.NewNodeHandler(tokens, nodes)
	userHandler := handler.NewUserHandler(tokens, users, nodes, attendance, cfg.BcryptCost)
	userHandler.PublishAttendance = queue_publisher.PublishAttendanceRecorded

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	go func() {
		if err := queue.StartAttendanceConsumer(); err != nil {
			log.Printf("attendance consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.CORS())
	router.Register(e, nodeHandler, userHandler, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
