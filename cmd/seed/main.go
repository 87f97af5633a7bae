package main

import (
	"context"
	"log"

	"github.com/wichananm65/freshora-backend/internal/catalog"
	"github.com/wichananm65/freshora-backend/internal/infrastructure/config"
	"github.com/wichananm65/freshora-backend/internal/infrastructure/database/postgres"
)

// seed wipes carts and orders and reloads the stock catalog.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("database: %v", err)
	}

	log.Println("🌱 Starting database seed...")
	if err := postgres.ClearTransactional(ctx, db); err != nil {
		log.Fatalf("clear carts and orders: %v", err)
	}

	seed := catalog.DefaultSeed()
	if err := catalog.NewStore(catalog.NewPostgresRepository(db)).Reset(ctx, seed); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}

	items := 0
	for _, s := range seed {
		items += len(s.Items)
	}
	log.Printf("✅ Seeded %d services with %d items", len(seed), items)
}
