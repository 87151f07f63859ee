// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command filexferd runs the file-transfer server: it loads config, binds
// the UDP socket, and serves peers until SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"code.hybscloud.com/filexfer/internal/config"
	"code.hybscloud.com/filexfer/internal/logging"
	"code.hybscloud.com/filexfer/internal/metrics"
	"code.hybscloud.com/filexfer/runtime"
)

// version is set at build time via -ldflags; a bare default keeps `go run`
// and local builds informative without requiring the flag.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "filexferd",
		Short: "UDP file-transfer server",
	}
	root.AddCommand(newServeCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Bind a UDP socket and serve file-transfer sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to the server config file")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)
	log := logger.WithField("component", "filexferd")

	conn, err := net.ListenPacket("udp", cfg.BindAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.BindAddr, err)
	}
	defer conn.Close()

	registry := prometheus.NewRegistry()
	recorder := metrics.New(registry)

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, registry, log)
	}

	srv, err := runtime.NewServer(conn, cfg.Key,
		runtime.WithFS(afero.NewOsFs()),
		runtime.WithChunkSize(cfg.ChunkSize),
		runtime.WithLogger(logger),
		runtime.WithMetrics(recorder),
	)
	if err != nil {
		return fmt.Errorf("construct server: %w", err)
	}

	log.WithField("bind_addr", cfg.BindAddr).Info("serving")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(context.Background()) }()

	select {
	case <-sigCh:
		log.Info("shutting down")
		return srv.Close()
	case err := <-errCh:
		return err
	}
}

func serveMetrics(addr string, registry *prometheus.Registry, log *logrus.Entry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	log.WithField("metrics_addr", addr).Info("metrics listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Warn("metrics listener stopped")
	}
}
