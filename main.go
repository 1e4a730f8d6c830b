package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"superego/admin"
	"superego/config"
	"superego/storage"
)

func main() {
	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("opening storage: %v", err)
	}

	sessions := admin.NewSessionManager(cfg.Host, cfg.SessionPortMin, cfg.SessionPortMax)
	defer sessions.StopAll()

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		sig := <-signals
		log.Printf("received %s, stopping all sessions", sig)
		sessions.StopAll()
		os.Exit(0)
	}()

	api := admin.NewAPI(store, sessions)
	addr := cfg.Host + ":" + cfg.HTTPPort
	log.Printf("admin API listening on %s", addr)
	if err := api.Router().Run(addr); err != nil {
		log.Fatalf("admin API failed: %v", err)
	}
}
