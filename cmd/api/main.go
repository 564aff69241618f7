package main

import (
	"log"

	"insight-chat/internal/shared/config"
	"insight-chat/internal/shared/server"
)

func main() {
	cfg := config.Load()
	r := server.NewRouter(cfg)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting chat API server on %s (analysis backend %s)", addr, cfg.AnalyzeBaseURL)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
