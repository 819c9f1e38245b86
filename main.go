// File: rentacar/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentacar/bot"
	"rentacar/config"
	"rentacar/cron"
	"rentacar/services/booking"
	"rentacar/utils"
	"rentacar/web"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	utils.InitSessionCache()

	wizardStore := booking.NewRedisWizardStore(utils.GetSessionCacheClient())

	storefront, err := bot.New(utils.GetSessionCacheClient(), utils.GetCacheClient(), wizardStore, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize telegram bot: %v", err)
	}
	go storefront.Start()

	cron.InitNotificationWorker(storefront)

	router := web.NewRouter(storefront, logger)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	storefront.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
