package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atelier-storefront/internal/catalog"
	"atelier-storefront/internal/repository/session"
	authsvc "atelier-storefront/internal/service/auth"
	cartsvc "atelier-storefront/internal/service/cart"
	checkoutsvc "atelier-storefront/internal/service/checkout"
)

// Deps carries the collaborators the router wires handlers to.
type Deps struct {
	Catalog     *catalog.Catalog
	CartSvc     *cartsvc.Service
	CheckoutSvc *checkoutsvc.Service
	AuthSvc     *authsvc.Service
	SessionRepo session.Repository
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server with all storefront routes.
func New(addr string, logger *log.Logger, deps Deps) (*Server, error) {
	router := buildRouter(logger, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyHandler probes the session store with a throwaway write so a broken
// backend surfaces before traffic does.
func readyHandler(repo session.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		const probe = "readyz:probe"
		if err := repo.Set(ctx, probe, []byte("ok")); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "session store not writable"})
			return
		}
		_ = repo.Delete(ctx, probe)
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
