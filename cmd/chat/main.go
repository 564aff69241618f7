package main

import (
	"log"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"insight-chat/internal/analysis"
	"insight-chat/internal/attachment"
	"insight-chat/internal/audit"
	"insight-chat/internal/chat"
	"insight-chat/internal/shared/config"
	localstore "insight-chat/internal/shared/storage/object/local"
	"insight-chat/internal/theme"
	"insight-chat/internal/transcript"
)

func main() {
	cfg := config.Load()

	store := localstore.New(cfg.LocalStoreDir)
	selector := attachment.NewSelector(store)
	themes := theme.NewManager(cfg.Theme)

	svc := &chat.Service{
		Transcript: transcript.NewMemoryStore(),
		Selector:   selector,
		Backend:    analysis.NewClient(cfg.AnalyzeBaseURL, &http.Client{Timeout: 120 * time.Second}),
		Audit:      audit.NewMemoryStore(),
	}

	p := tea.NewProgram(
		initChat(svc, selector, themes, store),
		tea.WithAltScreen(),
	)
	watchTranscript(svc.Transcript, p.Send)
	if _, err := p.Run(); err != nil {
		log.Fatalf("chat error: %v", err)
	}
}
