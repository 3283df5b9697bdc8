// Package main runs a local NATS server with JetStream for trying the
// kollektiv CLI's NATS KV snapshot store.
//
// Usage:
//
//	kollektiv-nats --store-dir ./.kollektiv-nats
//	kollektiv schedule --store nats://127.0.0.1:4222
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		host     string
		port     int
		storeDir string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:          "kollektiv-nats",
		Short:        "Run a local NATS server with JetStream for kollektiv --store nats://",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if storeDir == "" {
				dir, err := os.MkdirTemp("", "kollektiv-nats-")
				if err != nil {
					return fmt.Errorf("failed to create store directory: %w", err)
				}
				defer func() { _ = os.RemoveAll(dir) }()
				storeDir = dir
			}

			opts := &server.Options{
				Host:      host,
				Port:      port,
				JetStream: true,
				StoreDir:  storeDir,
				NoLog:     !verbose,
				NoSigs:    true,
			}

			srv, err := server.NewServer(opts)
			if err != nil {
				return fmt.Errorf("failed to create NATS server: %w", err)
			}
			if verbose {
				srv.ConfigureLogger()
			}

			go srv.Start()
			if !srv.ReadyForConnections(10 * time.Second) {
				srv.Shutdown()
				return fmt.Errorf("NATS server not ready within timeout")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "NATS listening, JetStream data in %s\n", storeDir)
			fmt.Fprintf(out, "use: kollektiv --store %s <command>\n", srv.ClientURL())

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan

			fmt.Fprintln(cmd.ErrOrStderr(), "shutting down NATS server")
			srv.Shutdown()
			srv.WaitForShutdown()

			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Listen address")
	cmd.Flags().IntVar(&port, "port", 4222, "Client port (-1 for a random port)")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "JetStream storage directory (default: temporary, removed on exit)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log server activity")

	return cmd
}
