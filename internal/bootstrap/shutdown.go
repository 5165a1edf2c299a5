package bootstrap

import (
	"context"
	"log/slog"

	"github.com/korvus/EnchantMastery_Go/internal/database"
	"github.com/korvus/EnchantMastery_Go/internal/server"
	"github.com/korvus/EnchantMastery_Go/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
	SSEHub *sse.Hub
	DBPool database.Pool
}

// GracefulShutdown performs graceful shutdown of all application components:
// 1. HTTP server (stop accepting new requests)
// 2. SSE hub (disconnect streaming clients)
// 3. Database pool (release connections)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// Shutdown server first (stop accepting new requests)
	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.SSEHub != nil {
		components.SSEHub.Stop()
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
