package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wichananm65/freshora-backend/internal/cart"
	"github.com/wichananm65/freshora-backend/internal/catalog"
	"github.com/wichananm65/freshora-backend/internal/infrastructure/config"
	"github.com/wichananm65/freshora-backend/internal/infrastructure/database/postgres"
	"github.com/wichananm65/freshora-backend/internal/interface/http/router"
	"github.com/wichananm65/freshora-backend/internal/notify"
	"github.com/wichananm65/freshora-backend/internal/order"
)

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

	store := catalog.NewStore(catalog.NewPostgresRepository(db))
	if cfg.SeedCatalog {
		if _, err := store.SeedIfEmpty(ctx); err != nil {
			log.Fatalf("seed catalog: %v", err)
		}
	}

	notifier, closeNotifier, err := newNotifier(cfg)
	if err != nil {
		log.Fatalf("notifier: %v", err)
	}
	defer closeNotifier()

	carts := cart.NewService(cart.NewPostgresRepository(db), store)
	orders := order.NewService(order.NewPostgresRepository(db), store, notifier)

	app := router.New(cfg,
		catalog.NewHandler(store, cfg.AllowResetCatalog),
		cart.NewHandler(carts),
		order.NewHandler(orders),
	)

	go func() {
		log.Printf("🚀 Server running on %s", cfg.Addr)
		log.Printf("📊 Health check: http://localhost%s/health", cfg.Addr)
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// newNotifier picks the email transport named by cfg.Notifier. The returned
// func releases any broker resources.
func newNotifier(cfg config.Config) (notify.Notifier, func(), error) {
	switch cfg.Notifier {
	case "smtp":
		return notify.NewMailer(mailerConfig(cfg)), func() {}, nil
	case "queue":
		pool, err := notify.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize)
		if err != nil {
			return nil, nil, err
		}
		return notify.NewQueueNotifier(pool), pool.Close, nil
	default:
		return notify.NewLogNotifier(log.Default()), func() {}, nil
	}
}

func mailerConfig(cfg config.Config) notify.MailerConfig {
	return notify.MailerConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		Timeout:  cfg.SMTPTimeout,
	}
}
