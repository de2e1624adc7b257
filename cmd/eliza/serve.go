package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/eliza/engine"
	"github.com/hupe1980/eliza/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [identity]",
		Short: "Serve the web chat, REST API and metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := a.cfg.Script
			if len(args) == 1 {
				id = args[0]
			}
			ids, err := resolveIdentities([]string{id}, a.logger)
			if err != nil {
				return err
			}

			// Fail on a broken script before accepting connections.
			if _, err := a.newChatbot(ids[0], a.cfg.Name); err != nil {
				return err
			}

			srv, err := server.New(func() (*engine.Chatbot, error) {
				return a.newChatbot(ids[0], a.cfg.Name)
			}, func(o *server.Options) {
				o.Addr = a.cfg.Server.Addr
				o.MaxSessions = a.cfg.Server.MaxSessions
				o.Logger = a.logger
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.Start(); err != nil {
				return err
			}
			cmd.Printf("Serving %s on http://%s\n", ids[0].name, srv.Addr())

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	f := cmd.Flags()
	f.String("addr", ":8080", "listen address")
	f.Int("max-sessions", 1000, "maximum number of live chat sessions")
	return cmd
}
