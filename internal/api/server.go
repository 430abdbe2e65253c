package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ItsNotGoodName/x-wallpaper/internal/build"
	"github.com/ItsNotGoodName/x-wallpaper/internal/core"
	"github.com/ItsNotGoodName/x-wallpaper/pkg/chiext"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

// NewRouter returns the chi router and the huma API mounted on it.
func NewRouter() (*chi.Mux, huma.API) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)

	api := humachi.New(r, huma.DefaultConfig("x-wallpaper", build.Current.Version))

	return r, api
}

func NewServer(addr string, handler http.Handler) Server {
	return Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Server serves the API until its context is done.
type Server struct {
	server *http.Server
}

func (s Server) String() string {
	return "api.Server"
}

func (s Server) Serve(ctx context.Context) error {
	errC := make(chan error, 1)
	go func() {
		host, port := core.SplitAddress(s.server.Addr)
		slog.Info("Starting HTTP server", "host", host, "port", port)
		errC <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shutdown HTTP server", "error", err)
	}
	if err := <-errC; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
