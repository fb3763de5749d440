package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"

	"ebaylistings/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Listen opens the local TCP port, or an ngrok HTTP endpoint when enabled.
func Listen(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (net.Listener, error) {
	if cfg.NgrokEnabled {
		tun, err := ngrok.Listen(ctx, ngrokconfig.HTTPEndpoint(), ngrok.WithAuthtoken(cfg.NgrokAuthtoken))
		if err != nil {
			return nil, fmt.Errorf("start ngrok tunnel: %w", err)
		}
		log.Infow("ngrok tunnel established", "url", tun.URL())
		return tun, nil
	}

	l, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.ServerPort))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", cfg.ServerPort, err)
	}
	log.Infow("server listening", "addr", l.Addr().String())
	return l, nil
}

// Serve runs handler on l until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, l net.Listener, handler http.Handler, log *zap.SugaredLogger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
