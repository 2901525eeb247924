package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hosteldada/backend/internal/api/handler"
	"hosteldada/backend/internal/assignment"
	"hosteldada/backend/internal/matching"
	"hosteldada/backend/internal/models"
	"hosteldada/backend/internal/storage"
	"hosteldada/backend/internal/survey"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Migrations
	err = db.AutoMigrate(
		&models.Survey{},
		&models.CompatibilityScore{},
		&models.Room{},
		&models.RoomAssignment{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Hostel Dada Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	// 1. Dependencies
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	// 2. Services
	matchSvc := matching.NewService(s)
	lifecycleSvc := assignment.NewService(s)
	surveySvc := survey.NewService(s, matchSvc.Cache)

	// 3. Gin and routing
	r := gin.Default()
	h := handler.NewHandler(matchSvc, lifecycleSvc, surveySvc, s)

	r.POST("/auth/token", h.GetAdminToken)
	r.GET("/ws/assignments", h.ServeAssignmentFeed)

	authorized := r.Group("/", h.RequireAuth)
	authorized.POST("/surveys", h.SubmitSurvey)
	authorized.GET("/surveys/:studentID", h.GetSurvey)
	authorized.GET("/score", h.ScorePair)
	authorized.GET("/matches/:studentID", h.TopMatches)
	authorized.POST("/terms/:term/assignments", h.AutoAssign)
	authorized.GET("/terms/:term/assignments", h.ListAssignments)
	authorized.POST("/assignments/:id/status", h.TransitionAssignment)

	server := &http.Server{
		Addr:           ":8080",
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
