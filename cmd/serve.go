package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pawsitive/mathcat/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, setupOptions{withLLM: true})
		if err != nil {
			return err
		}
		defer rt.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			host, port, err := splitAddr(addr)
			if err != nil {
				return err
			}
			rt.cfg.Server.Host, rt.cfg.Server.Port = host, port
		}

		opts := []api.Option{
			api.WithLogger(rt.log),
			api.WithDefaultUser(rt.userID),
		}
		if rt.homework != nil {
			opts = append(opts, api.WithHomework(rt.homework))
		} else {
			rt.log.Warn("homework help disabled: no LLM provider configured")
		}

		server := api.NewServer(rt.cfg.Server, rt.practice, rt.chat, rt.store, opts...)
		httpServer := server.HTTPServer()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			rt.log.Info("HTTP server starting", "addr", httpServer.Addr, "db", rt.store.Dialect())
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				rt.log.Error("HTTP server error", "error", err)
				return err
			}
			return nil
		case <-ctx.Done():
		}

		rt.log.Info("shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			rt.log.Error("HTTP server shutdown error", "error", err)
			return err
		}
		rt.log.Info("mathcat server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address host:port (overrides MATHCAT_HOST/MATHCAT_PORT)")
}

func splitAddr(addr string) (string, int, error) {
	host, p, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --addr %q: %w", addr, err)
	}
	port, err := strconv.Atoi(p)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port in --addr %q", addr)
	}
	return host, port, nil
}
