package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tanpawarit/Chative-Travel-Assistant/api"
	configx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP JSON API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		httpCfg, err := configx.New[api.Config]("HTTP")
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			httpCfg.Addr = addr
		}

		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				log.Warn().Err(err).Msg("close resources")
			}
		}()

		srv := &http.Server{
			Addr:         httpCfg.Addr,
			Handler:      api.NewHandler(a.conversation(), a.registry),
			ReadTimeout:  httpCfg.ReadTimeout,
			WriteTimeout: httpCfg.WriteTimeout,
		}

		serverErrors := make(chan error, 1)
		go func() {
			log.Info().Str("addr", srv.Addr).Msg("http server listening")
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case sig := <-shutdown:
			log.Info().Str("signal", sig.String()).Msg("shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				log.Error().Err(err).Dur("timeout", httpCfg.ShutdownTimeout).Msg("graceful shutdown did not complete")
				return srv.Close()
			}
			log.Info().Msg("http server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address, overrides HTTP_ADDR")
}
