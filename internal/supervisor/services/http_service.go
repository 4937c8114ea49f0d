// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/thejerf/suture/v4"
)

// HTTPServer is the lifecycle subset of *http.Server.
type HTTPServer interface {
	Serve(ln net.Listener) error
	Shutdown(ctx context.Context) error
}

// Listen binds the TCP address the HTTP server will serve on. main calls it
// before the supervisor tree starts so a busy port stops the process
// instead of entering the restart loop.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", addr, err)
	}
	return ln, nil
}

// HTTPServerService runs the gateway's HTTP server under supervision.
//
// Serve runs in a goroutine; cancellation of the Serve context triggers
// Shutdown with the configured timeout so in-flight manifest and segment
// relays can drain. http.Server closes the listener when Serve returns, so
// a serve failure cannot be retried: it terminates the supervisor tree.
//
//	ln, err := services.Listen(cfg.Server.Addr())
//	server := &http.Server{Handler: router.Setup()}
//	tree.AddAPIService(services.NewHTTPServerService(server, ln, cfg.Server.ShutdownTimeout))
type HTTPServerService struct {
	server          HTTPServer
	listener        net.Listener
	shutdownTimeout time.Duration
	name            string
}

// NewHTTPServerService creates the service. A non-positive shutdownTimeout
// means 10 seconds.
func NewHTTPServerService(server HTTPServer, ln net.Listener, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:          server,
		listener:        ln,
		shutdownTimeout: shutdownTimeout,
		name:            "http-server",
	}
}

// Serve implements suture.Service. http.ErrServerClosed is not an error.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w (%w)", err, suture.ErrTerminateSupervisorTree)
		}
		return nil

	case <-ctx.Done():
		// The Serve context is already canceled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}

		<-errCh
		return ctx.Err()
	}
}

// String implements fmt.Stringer; suture logs services by this name.
func (h *HTTPServerService) String() string {
	return h.name
}
