// Package main is the entry point for the mafia coordinator process.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/Deimvis/MafiaGame/internal/network"
	"github.com/Deimvis/MafiaGame/internal/platform/config"
	"github.com/Deimvis/MafiaGame/internal/platform/logger"
	"github.com/Deimvis/MafiaGame/internal/platform/metrics"
	"github.com/Deimvis/MafiaGame/internal/room"
)

func main() {
	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		appLogger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	appLogger.Info("starting coordinator",
		"addr", cfg.ListenAddr(),
		"players", cfg.ActivePlayersNumber,
		"mafia", cfg.MafiaNumber,
		"sheriffs", cfg.SheriffNumber,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rules := room.GameRules{
		ActivePlayersNumber: cfg.ActivePlayersNumber,
		MafiaNumber:         cfg.MafiaNumber,
		SheriffNumber:       cfg.SheriffNumber,
	}
	rm := room.NewRoom(rules, appLogger, room.WithPhaseDuration(cfg.PhaseDuration))
	appLogger.Info("room created", "room", rm.ID())

	hub := network.NewHub(rm, appLogger)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(ctx, hub, w, r, appLogger)
	})
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{Addr: cfg.ListenAddr(), Handler: mux}
	go func() {
		appLogger.Info("listening", "addr", cfg.ListenAddr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	cancel()
	server.Shutdown(context.Background())
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serveWs handles websocket requests from peers. The username is bound at
// upgrade time from the query string.
func serveWs(ctx context.Context, hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "username query parameter is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade websocket connection", "error", err)
		return
	}

	client := network.NewClient(hub, conn, username)
	if err := client.Join(); err != nil {
		log.Warn("join refused", "username", username, "error", err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		conn.Close()
		return
	}
	client.Start(ctx)
}
