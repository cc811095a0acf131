// Package server exposes the task service over HTTP.
package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harrisonrobin/tasksheet/pkg/tasks"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Options configures the router around the API routes.
type Options struct {
	// StaticDir holds the built web client. Unmatched paths are served from
	// it, falling back to its index.html.
	StaticDir string
	// CORSOrigins lists allowed origins; "*" allows any.
	CORSOrigins []string
}

// NewRouter builds the gin engine serving svc.
func NewRouter(svc *tasks.Service, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	}

	h := &handler{svc: svc}
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	api := r.Group("/api")
	api.GET("/tasks", h.listTasks)
	api.POST("/update-status", h.updateStatus)
	api.POST("/create-task", h.createTask)

	r.NoRoute(static(opts.StaticDir))
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, RequestIDHeader)
	cfg.ExposeHeaders = []string{RequestIDHeader}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// static serves files of dir, or dir/index.html for client-side routes.
func static(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || dir == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}
		name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+c.Request.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(index)
	}
}

// Run serves handler on addr until ctx is cancelled, then shuts down.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Infof("server running and listening on http://localhost%s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}
	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
