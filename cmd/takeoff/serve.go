package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	takeoff "github.com/Clayne666/framing-takeoff-toolkit-sub000"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/server"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scan API over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := newLogger(cmd)

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = viper.GetString("addr")
	}

	results, err := openStore()
	if err != nil {
		return err
	}
	defer results.Close()

	factory := func(path string) *takeoff.Scanner {
		scanner, err := newScanner(path, log)
		if err != nil {
			// Misconfiguration (e.g. vision without an API key) degrades
			// to a plain scan rather than wedging the job queue.
			log.Warn("scanner configuration incomplete, using defaults", "error", err)
			return takeoff.New()
		}
		return scanner
	}

	runner := server.NewRunner(factory, results, nil, log, viper.GetInt("workers")*8)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runner.Start(ctx, viper.GetInt("workers"))
	defer runner.Stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, results, log, server.Config{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// openStore opens the configured scan store; ":memory:" and the empty
// string select an ephemeral in-memory store.
func openStore() (store.Store, error) {
	path := viper.GetString("store")
	if path == "" || path == ":memory:" {
		return store.NewMemory(), nil
	}
	return store.Open(path)
}
