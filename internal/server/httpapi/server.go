// Package httpapi exposes the dispatch service over REST. Responses use the
// ld+json content type with hydra envelopes on collections; authentication is
// a bearer JWT carrying the owner identifier.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/paperdispatch/paperdispatch/internal/logging"
	"github.com/paperdispatch/paperdispatch/internal/server/config"
	"github.com/paperdispatch/paperdispatch/internal/server/services"
)

type Server struct {
	address       string
	logger        logging.Logger
	dispatch      *services.DispatchService
	organizations []config.Organization
	jwtSecret     []byte
}

func NewServer(a string, l logging.Logger, ds *services.DispatchService, orgs []config.Organization, secretKey string) (*Server, error) {
	return &Server{
		address:       a,
		logger:        l.With("module", "http_server"),
		dispatch:      ds,
		organizations: orgs,
		jwtSecret:     []byte(secretKey),
	}, nil
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
