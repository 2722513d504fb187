package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pable/hoopstats/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and HTML dashboard",
	Long: `Load the roster once and serve it over HTTP until interrupted.

  GET  /                        dashboard
  GET  /health
  GET  /api/v1/options
  GET  /api/v1/players?team=&pos=
  GET  /api/v1/players/{name}
  GET  /api/v1/leaders?stat=PTS&n=10
  GET  /api/v1/compare?name=A&name=B
  POST /api/v1/team             {"picks":{"PG":"...","SG":"...",...}}`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port; overrides server.port")
}

func runServe(cmd *cobra.Command, args []string) error {
	t, err := loadTable()
	if err != nil {
		return err
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(t, server.Options{
		Port:           port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Season:         cfg.Data.Season,
	})
	return srv.Run(ctx)
}
