package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hosteldada/backend/internal/assignment"
	"hosteldada/backend/internal/matching"
	"hosteldada/backend/internal/models"
	"hosteldada/backend/internal/storage"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	storageSvc := storage.NewStorageService(db, rdb)
	matchSvc := matching.NewService(storageSvc)
	lifecycleSvc := assignment.NewService(storageSvc)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "add-room":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin add-room <room_id> <building> <capacity>")
			os.Exit(1)
		}
		capacity, err := strconv.Atoi(os.Args[4])
		if err != nil {
			fmt.Println("Invalid capacity. Please provide an integer.")
			os.Exit(1)
		}
		room := &models.Room{ID: os.Args[2], Building: os.Args[3], Capacity: capacity}
		if err := storageSvc.SaveRoom(room); err != nil {
			log.Fatalf("Error adding room: %v", err)
		}
		fmt.Printf("Room %s added with capacity %d.\n", room.ID, room.Capacity)
	case "assign":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin assign <term>")
			os.Exit(1)
		}
		term := os.Args[2]
		created, err := matchSvc.AutoAssignTerm(context.Background(), term)
		for _, a := range created {
			fmt.Printf(" - %s: room %s, students %v, score %d\n", a.ID, a.RoomID, []string(a.StudentIDs), a.Score)
		}
		if err != nil {
			log.Fatalf("Error assigning term %s: %v", term, err)
		}
		fmt.Printf("Created %d pending assignments for term %s.\n", len(created), term)
	case "approve":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin approve <assignment_id> <admin_id>")
			os.Exit(1)
		}
		updated, err := lifecycleSvc.Transition(os.Args[2], models.StatusApproved, os.Args[3])
		if err != nil {
			log.Fatalf("Error approving assignment: %v", err)
		}
		fmt.Printf("Assignment %s approved by %s.\n", updated.ID, updated.ApprovedBy)
	case "reject":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin reject <assignment_id>")
			os.Exit(1)
		}
		if _, err := lifecycleSvc.Transition(os.Args[2], models.StatusRejected, ""); err != nil {
			log.Fatalf("Error rejecting assignment: %v", err)
		}
		fmt.Printf("Assignment %s rejected.\n", os.Args[2])
	case "cancel":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin cancel <assignment_id>")
			os.Exit(1)
		}
		if _, err := lifecycleSvc.Transition(os.Args[2], models.StatusCancelled, ""); err != nil {
			log.Fatalf("Error cancelling assignment: %v", err)
		}
		fmt.Printf("Assignment %s cancelled.\n", os.Args[2])
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}
