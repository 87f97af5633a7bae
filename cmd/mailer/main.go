package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wichananm65/freshora-backend/internal/infrastructure/config"
	"github.com/wichananm65/freshora-backend/internal/notify"
)

// The mailer drains the order email queue and delivers each job over SMTP.
func main() {
	cfg := config.Load()

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open channel: %v", err)
	}
	if _, err := notify.DeclareQueue(ch, cfg.RabbitMQQueue); err != nil {
		log.Fatalf("Failed to declare queue: %v", err)
	}
	ch.Close()

	sender := notify.NewMailer(notify.MailerConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		Timeout:  cfg.SMTPTimeout,
	})

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	for i := 1; i <= cfg.MailerWorkers; i++ {
		w, err := notify.NewWorker(i, conn, cfg.RabbitMQQueue, sender)
		if err != nil {
			log.Fatalf("Failed to start worker: %v", err)
		}
		wg.Add(1)
		go w.Start(ctx, &wg)
	}
	log.Printf("Mailer started with %d workers on queue %q", cfg.MailerWorkers, cfg.RabbitMQQueue)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down mailer...")
	cancel()
	conn.Close()
	wg.Wait()
	log.Println("Mailer stopped")
}
