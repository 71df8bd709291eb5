package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collegedate/config"
	"collegedate/internal/database"
	"collegedate/internal/events"
	"collegedate/internal/logger"
	"collegedate/internal/router"
	"collegedate/pkg/payment"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Server.Env)

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("migrate failed")
	}
	database.SeedAdmin(db)

	var provider payment.Provider
	if cfg.Flutterwave.SecretKey != "" {
		provider = payment.NewFlutterwaveProvider(cfg.Flutterwave.BaseURL, cfg.Flutterwave.SecretKey)
	} else {
		log.Warn("FLUTTERWAVE_SECRET_KEY not set, using stub provider")
		provider = payment.NewStubProvider()
	}

	var pub events.Publisher = events.NopPublisher{}
	if cfg.AMQP.URL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
		if err != nil {
			log.WithError(err).Fatal("amqp connect failed")
		}
		pub = p
	} else {
		log.Warn("AMQP_URL not set, events disabled")
	}
	defer pub.Close()

	engine := router.Setup(cfg, db, provider, pub, log)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.WithField("port", cfg.Server.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen failed")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server shutdown failed")
	}
	log.Info("server stopped")
}
