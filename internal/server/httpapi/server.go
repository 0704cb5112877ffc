package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dpetrovs/lockbox/internal/logging"
	"github.com/dpetrovs/lockbox/internal/server/services"
)

// Server wires the services to a gin engine and owns the HTTP listener
// lifecycle.
type Server struct {
	address   string
	engine    *gin.Engine
	logger    logging.Logger
	jwtSecret []byte

	users   *services.UserService
	apiKeys *services.ApiKeyService
	vault   *services.VaultService
}

// NewServer constructs a Server and registers all routes.
func NewServer(address string, l logging.Logger, us *services.UserService, ks *services.ApiKeyService, vs *services.VaultService, secretKey string) *Server {
	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
		users:     us,
		apiKeys:   ks,
		vault:     vs,
	}
	s.engine = s.buildEngine()
	return s
}

// Handler exposes the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) buildEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)
	authGroup.POST("/refresh", s.handleRefresh)

	protected := api.Group("")
	protected.Use(authRequired(s.jwtSecret))

	protected.GET("/users/me", s.handleGetCurrentUser)
	protected.DELETE("/users/me", s.handleDeleteAccount)
	protected.GET("/users/me/export", s.handleExportUserData)

	protected.POST("/api-keys", s.handleCreateApiKey)
	protected.GET("/api-keys", s.handleListApiKeys)
	protected.DELETE("/api-keys/:id", s.handleDeleteApiKey)

	protected.POST("/tenants", s.handleCreateTenant)
	protected.GET("/tenants", s.handleListTenants)
	protected.POST("/tenants/:tenantID/items", s.handleCreateVaultItem)
	protected.GET("/tenants/:tenantID/items", s.handleListVaultItems)
	protected.GET("/tenants/:tenantID/items/:itemID", s.handleGetVaultItem)
	protected.DELETE("/tenants/:tenantID/items/:itemID", s.handleDeleteVaultItem)

	return engine
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
