package main

import (
	"context"
	"log"

	"notes-app-be/internal/bootstrap"
	"notes-app-be/internal/config"
	"notes-app-be/internal/server"
	"notes-app-be/internal/tracer"
	"notes-app-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	mongo, err := database.NewMongoFromURI(context.Background(), cfg.Database.URI, cfg.Database.Database)
	if err != nil {
		log.Panicf("Unable to connect to MongoDB: %v", err)
	}
	defer mongo.Close(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(mongo, cfg)
	defer container.Logger.Sync()

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Welcome Mail Consumer...")
		if err := container.WelcomeService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
