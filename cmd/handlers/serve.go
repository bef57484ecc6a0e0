package handlers

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mentionpulse/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the insights HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			st, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer st.Close()

			if addr == "" {
				addr = appConfig.Server.Addr
			}

			service := buildInsightsService(ctx, st)
			srv := server.NewServer(addr, service, appConfig.GeminiTimeout()*2)
			return srv.Start(ctx)
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return serveCmd
}
