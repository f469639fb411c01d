package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/qatrack/internal/api"
	"github.com/mesh-intelligence/qatrack/internal/auth"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Serve the tracker over HTTP/JSON until interrupted. Shuts down gracefully on SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(flags)
			if err != nil {
				return err
			}
			if addr != "" {
				s.apiAddr = addr
			}

			logger, err := newLogger(cmd.ErrOrStderr(), s.logLevel, s.logFormat)
			if err != nil {
				return err
			}

			tracker, err := openTracker(s)
			if err != nil {
				return err
			}
			defer tracker.Detach()

			secret := s.jwtSecret
			if secret == "" {
				if secret, err = randomSecret(); err != nil {
					return err
				}
				logger.Warn("auth.jwt_secret is not set; session tokens will not survive a restart")
			}

			server := api.NewServer(tracker, auth.NewGate(tracker), auth.NewTokens([]byte(secret), s.tokenTTL), logger, api.Options{
				RequireToken:  s.requireToken,
				ExposeErrors:  s.exposeErrors,
				AuthRateLimit: s.authRateLimit,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Serve(ctx, s.apiAddr, s.readTimeout, s.writeTimeout, s.shutdownTimeout)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides api.addr)")
	return cmd
}
