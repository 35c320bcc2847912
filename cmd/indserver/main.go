package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stockdash/internal/indserver"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	cfg := indserver.LoadConfig()
	log.Printf("[indserver] http=%s redis=%q sqlite=%q cache_ttl=%ds",
		cfg.HTTPAddr, cfg.RedisAddr, cfg.SQLitePath, cfg.CacheTTLSec)

	svc, err := indserver.New(cfg)
	if err != nil {
		log.Fatalf("[indserver] init failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := svc.Run(ctx); err != nil {
		log.Fatalf("[indserver] fatal: %v", err)
	}
}
