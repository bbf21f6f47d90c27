package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/canopyhq/canopy/pkg/adapters/httpapi"
	"github.com/canopyhq/canopy/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the Canopy engine in server mode, exposing the conversation API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		// .env is optional; real deployments set the environment directly.
		_ = godotenv.Load()

		logger := newLogger()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = os.Getenv(envAddr)
		}
		if addr == "" {
			addr = ":8080"
		}

		registry := prometheus.NewRegistry()
		metrics := observability.New(registry)

		engine, err := buildEngine(cmd.Context(), cmd, logger, metrics)
		if err != nil {
			fmt.Printf("Error initializing canopy: %v\n", err)
			os.Exit(1)
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		mux.Handle("/", httpapi.NewHandler(engine, httpapi.WithLogger(logger)))

		srv := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Canopy Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Canopy Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default :8080, or CANOPY_ADDR)")
}
