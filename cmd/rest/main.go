package main

import (
	"context"
	"log"

	"clinivoice-be/internal/bootstrap"
	"clinivoice-be/internal/config"
	"clinivoice-be/internal/server"
	"clinivoice-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Start Background Services
	go func() {
		log.Println("Background: Starting Broadcast Service...")
		if err := container.BroadcastService.Consume(context.Background()); err != nil {
			log.Printf("Background Broadcast Error: %v", err)
		}
	}()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
