package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hufschlaeger.net/task-records/internal/web"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "JSON-API für die Oberfläche starten",
		Args:    cobra.NoArgs,
		PreRunE: a.preRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.ListenAddr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return web.NewServer(a.cfg, a.factory, a.logger).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen-Adresse (Standard: LISTEN_ADDR bzw. :8080)")
	return cmd
}

