package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"property-revenue-sync/internal/handler/api"
	"property-revenue-sync/internal/handler/httperr"
	"property-revenue-sync/internal/handler/middleware"
	"property-revenue-sync/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Health  *api.HealthHandler
	Revenue *api.RevenueHandler
	Sync    *api.SyncHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	healthHandler *api.HealthHandler,
	revenueHandler *api.RevenueHandler,
	syncHandler *api.SyncHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *slog.Logger,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, Handlers{Health: healthHandler, Revenue: revenueHandler, Sync: syncHandler}, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", h.Health.Health)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		revenue := apiGroup.Group("/revenue")
		{
			addRoutes(revenue, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Revenue.GetRevenue},
				{Method: http.MethodGet, Path: "/listings", Handler: h.Revenue.GetCategoryRevenue},
				{Method: http.MethodGet, Path: "/date-range", Handler: h.Revenue.GetDateRange},
				{Method: http.MethodPost, Path: "/update-revenue", Handler: h.Revenue.UpdateRevenue, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
				{Method: http.MethodPost, Path: "/populate-initial", Handler: h.Revenue.PopulateInitial, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "/sync", Handler: h.Sync.Sync},
			})
		}
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httperr.NewResponse(http.StatusNotFound, "Route not found", nil))
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
