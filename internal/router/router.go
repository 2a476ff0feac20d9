package router

import (
	"net/http"

	"proveedores/internal/apierror"
	"proveedores/internal/config"
	_ "proveedores/internal/docs" // registers the OpenAPI document
	"proveedores/internal/handler"
	"proveedores/internal/middleware"
	"proveedores/internal/repository"
	"proveedores/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Mongo/Postgres.
// A nil limiter disables rate limiting.
func New(cfg *config.Config, repo repository.ProveedorRepository, limiter middleware.Limiter) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	if limiter != nil {
		r.Use(middleware.RateLimiter(limiter))
	}
	r.Use(middleware.Timeout(cfg.RequestTimeout()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apierror.New("Ruta no encontrada"))
	})

	// ── Services ─────────────────────────────────────────────────────────────
	proveedorSvc := service.NewProveedorService(repo, service.NewMonotonicClock(nil))

	// ── Handlers ─────────────────────────────────────────────────────────────
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(repo))

	api := r.Group("/api")
	{
		prov := api.Group("/proveedores")
		{
			prov.GET("", proveedoresH.Listar)
			prov.POST("", proveedoresH.Crear)

			// Static segments are matched before /:id.
			prov.GET("/buscar", proveedoresH.BuscarQuery)
			prov.GET("/buscar/:termino", proveedoresH.Buscar)
			prov.GET("/estado/:estado", proveedoresH.PorEstado)
			prov.GET("/entrega/:estadoEntrega", proveedoresH.PorEstadoEntrega)

			prov.GET("/:id", proveedoresH.ObtenerPorID)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Eliminar)
			prov.PATCH("/:id/estadisticas", proveedoresH.IncrementarEstadisticas)
		}
	}

	// Swagger UI — only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
