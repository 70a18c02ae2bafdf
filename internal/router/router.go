package router

import (
	"time"

	"github.com/weapub/sj-calculadora/internal/config"
	"github.com/weapub/sj-calculadora/internal/handler"
	"github.com/weapub/sj-calculadora/internal/metrics"
	"github.com/weapub/sj-calculadora/internal/middleware"
	"github.com/weapub/sj-calculadora/internal/repository"
	"github.com/weapub/sj-calculadora/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	proveedorRepo := repository.NewProveedorRepository(db)
	productoRepo := repository.NewProductoRepository(db)

	return NewWithServices(cfg, Services{
		Proveedores: service.NewProveedorService(proveedorRepo),
		Productos:   service.NewProductoService(productoRepo),
		Exportacion: service.NewExportacionService(productoRepo),
		DB:          handler.GormPinger(db),
	})
}

// Services is everything the HTTP layer needs; tests build it from stubs.
type Services struct {
	Proveedores service.ProveedorService
	Productos   service.ProductoService
	Exportacion service.ExportacionService
	DB          handler.Pinger
}

func NewWithServices(cfg *config.Config, s Services) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	proveedoresH := handler.NewProveedoresHandler(s.Proveedores)
	productosH := handler.NewProductosHandler(s.Productos)
	exportacionH := handler.NewExportacionHandler(s.Exportacion)

	r.GET("/", handler.Root)
	r.GET("/health", handler.Health(s.DB))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	prov := r.Group("/proveedores")
	{
		prov.GET("", proveedoresH.Listar)
		prov.GET("/:id", proveedoresH.ObtenerPorID)
		prov.POST("", proveedoresH.Crear)
		prov.PUT("/:id", proveedoresH.Actualizar)
		prov.DELETE("/:id", proveedoresH.Eliminar)
	}

	// GET looks up by codigo; PUT and DELETE take the numeric id.
	prods := r.Group("/productos")
	{
		prods.GET("", productosH.Listar)
		prods.GET("/:codigo", productosH.ObtenerPorCodigo)
		prods.POST("", productosH.Crear)
		prods.PUT("/:id", productosH.Actualizar)
		prods.DELETE("/:id", productosH.Eliminar)
	}

	r.GET("/exportar/productos", exportacionH.Productos)

	return r
}
