package main

import (
	"context"
	"log"
	"time"

	"notes-app-be/internal/config"
	"notes-app-be/internal/repository/mongodb"
	"notes-app-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	color.Cyan("Starting MongoDB index migration")

	mongo, err := database.NewMongoFromURI(ctx, cfg.Database.URI, cfg.Database.Database)
	if err != nil {
		color.Red("Failed to connect to MongoDB: %v", err)
		log.Fatal(err)
	}
	defer mongo.Close(context.Background())

	color.Yellow("Ensuring indexes on %q...", cfg.Database.Database)
	if err := mongodb.EnsureIndexes(ctx, mongo.DB); err != nil {
		color.Red("Index migration failed: %v", err)
		log.Fatal(err)
	}

	color.Green("Indexes are in place (users.email unique, notes.user_id+created_at)")
}
