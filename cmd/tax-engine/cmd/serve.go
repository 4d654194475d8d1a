package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/facturino/tax-engine/internal/logger"
	"github.com/facturino/tax-engine/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for the document engine.

The API provides endpoints for:
  - POST /api/v1/einvoice/generate - Gate, then render the UBL e-invoice
  - POST /api/v1/einvoice/check    - Pre-submission readiness report
  - POST /api/v1/saft/validate     - SAF-T D406 consistency report
  - GET  /api/v1/rules             - List the rule batteries
  - GET  /health                   - Health check

Examples:
  # Start server on default port
  tax-engine serve

  # Start on custom address in debug mode
  tax-engine serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 30*time.Second, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	if addr := os.Getenv("TAX_ENGINE_ADDR"); addr != "" && !cmd.Flags().Changed("address") {
		serverAddr = addr
	}

	config := &server.Config{
		Address:      serverAddr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}

	srv := server.NewServer(config)
	log := logger.WithComponent("serve")

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutting down server")
		os.Exit(0)
	}()

	log.Info().Str("address", serverAddr).Msg("starting server")
	return srv.Run()
}
