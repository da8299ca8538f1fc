package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/animator/internal/presentation/tui"
	httpAdapter "github.com/aretw0/animator/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/animator/pkg/adapters/mcp"
	"github.com/aretw0/animator/pkg/observability"
	"github.com/aretw0/animator/pkg/scene"
	"github.com/aretw0/animator/pkg/scheduler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <scene>",
	Short: "Run a scene in real time behind an HTTP API",
	Long: `Mounts the scene on a real-time loop and exposes nodes, actions, settings, a live graph, SSE transitions and prometheus metrics over HTTP.

With --mcp, the same system is also served as a Model Context Protocol server:
- stdio: JSON-RPC on Standard Input/Output; console output moves to Stderr.
- sse: Server-Sent Events over HTTP on --mcp-port.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		transport, _ := cmd.Flags().GetString("mcp")
		mcpPort, _ := cmd.Flags().GetInt("mcp-port")
		logger := newLogger(cmd)

		// Stdout carries JSON-RPC when serving MCP over stdio.
		var out io.Writer = os.Stdout
		switch transport {
		case "", "sse":
		case "stdio":
			out = os.Stderr
		default:
			fmt.Printf("Unknown MCP transport: %s. Supported: stdio, sse\n", transport)
			os.Exit(1)
		}

		sc, err := loadScene(args[0])
		if err != nil {
			fmt.Fprintf(out, "Error loading scene: %v\n", err)
			os.Exit(1)
		}

		reg := prometheus.NewRegistry()
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			fmt.Fprintf(out, "Error creating metrics: %v\n", err)
			os.Exit(1)
		}
		streams := httpAdapter.NewStreamManager()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		loop := scheduler.NewLoop()
		loopErrors := make(chan error, 1)
		go func() {
			loopErrors <- loop.Run(ctx)
		}()

		store, release, err := openStore(ctx, cmd, sc.Name, logger)
		if err != nil {
			fmt.Fprintf(out, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer release()

		var m *scene.Mounted
		var mountErr error
		err = loop.Do(ctx, func() {
			m, mountErr = mount(sc, loop, logger, nil,
				metrics.Hooks(),
				streams.Hooks(),
				observability.LogHooks(logger),
			)
		})
		if err == nil {
			err = mountErr
		}
		if err != nil {
			fmt.Fprintf(out, "Error mounting scene: %v\n", err)
			os.Exit(1)
		}

		if err := restore(ctx, loop, store, m, logger); err != nil {
			fmt.Fprintf(out, "Error restoring overrides: %v\n", err)
			os.Exit(1)
		}

		handler := httpAdapter.NewHandler(m.System, loop,
			httpAdapter.WithStreams(streams),
			httpAdapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
			httpAdapter.WithStore(store),
			httpAdapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner(out)
			fmt.Fprintf(out, "Starting Animator Server on %s\n", srv.Addr)
			fmt.Fprintf(out, "Serving scene: %s\n", sc.Name)
			serverErrors <- srv.ListenAndServe()
		}()

		mcpErrors := make(chan error, 1)
		if transport != "" {
			mcpSrv := mcpAdapter.NewServer(m.System, loop,
				mcpAdapter.WithStore(store),
				mcpAdapter.WithLogger(logger),
			)
			go func() {
				if transport == "stdio" {
					fmt.Fprintln(out, "Serving MCP on stdio")
					mcpErrors <- mcpSrv.ServeStdio()
					return
				}
				fmt.Fprintf(out, "Serving MCP (SSE) on :%d\n", mcpPort)
				mcpErrors <- mcpSrv.ServeSSE(ctx, mcpPort)
			}()
		}

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Fprintf(out, "Server error: %v\n", err)
			os.Exit(1)

		case err := <-loopErrors:
			fmt.Fprintf(out, "Loop stopped: %v\n", err)
			os.Exit(1)

		case err := <-mcpErrors:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(out, "MCP server error: %v\n", err)
				os.Exit(1)
			}
			fmt.Fprintln(out, "\nMCP session closed, shutting down...")
			shutdownServer(srv, out)
			cancel()

		case sig := <-shutdown:
			fmt.Fprintf(out, "\nStart shutdown... Signal: %v\n", sig)

			shutdownServer(srv, out)
			cancel()
		}
		fmt.Fprintln(out, "Animator Server stopped gracefully")
	},
}

// shutdownServer gives outstanding requests a deadline for completion.
func shutdownServer(srv *http.Server, out io.Writer) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	// Asking listener to shut down and shed load.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(out, "Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
		if err := srv.Close(); err != nil {
			fmt.Fprintf(out, "Error killing server: %v\n", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("store", "memory", "Where settings overrides persist: memory, file or redis")
	serveCmd.Flags().String("store-dir", ".animator", "Directory of the file store")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Address of the redis store")
	serveCmd.Flags().String("mcp", "", "Also serve MCP: stdio or sse")
	serveCmd.Flags().Int("mcp-port", 8081, "Port of the MCP SSE server")
}
