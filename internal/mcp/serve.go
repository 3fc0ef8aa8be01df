package mcp

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roivaz/mcp-adapters/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the server until the client hangs up (stdio mode) or a
// termination signal arrives (HTTP mode). It closes the server's
// resources on the way out.
func Serve(srv *Server, addr string, stdio bool, log logging.Logger) error {
	defer srv.Close()

	if stdio {
		log.Info("serving over stdio")
		return srv.ServeStdio()
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("MCP server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
