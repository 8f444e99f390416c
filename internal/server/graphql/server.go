package graphql

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/graphql-go/handler"

	"github.com/dmitrijs2005/uptask/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server serves the GraphQL endpoint at / and /graphql plus /healthz.
type Server struct {
	address   string
	logger    logging.Logger
	jwtSecret []byte
	router    *mux.Router
}

func NewServer(address string, l logging.Logger, secretKey string, r *Resolvers) (*Server, error) {
	schema, err := NewSchema(r)
	if err != nil {
		return nil, err
	}

	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
		router:    mux.NewRouter(),
	}

	h := handler.New(&handler.Config{Schema: &schema, Pretty: true})

	s.router.Use(s.loggingMiddleware, s.identityMiddleware)
	s.router.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	s.router.Handle("/graphql", h).Methods(http.MethodGet, http.MethodPost)
	s.router.Handle("/", h).Methods(http.MethodGet, http.MethodPost)

	return s, nil
}

// Handler exposes the routed handler, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Serve accepts connections on lis until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}
