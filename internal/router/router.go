package router

import (
	"time"

	"floreria/internal/config"
	"floreria/internal/handler"
	"floreria/internal/middleware"
	"floreria/internal/repository"
	"floreria/internal/service"
	"floreria/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	soporteRepo := repository.NewSoporteRepository(db)
	carritoRepo := repository.NewCarritoRepository(rdb)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, movimientoStockRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, movimientoStockRepo, dispatcher, cfg.PDFStoragePath, cfg.NombreTienda)
	compraSvc := service.NewCompraService(compraRepo, proveedorRepo, productoRepo, movimientoStockRepo)
	soporteSvc := service.NewSoporteService(soporteRepo, usuarioRepo)
	carritoSvc := service.NewCarritoService(carritoRepo, productoRepo, ventaSvc)
	reporteSvc := service.NewReporteService(ventaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	soporteH := handler.NewSoporteHandler(soporteSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/register", middleware.LoginRateLimiter(), authH.Registro)
		auth.POST("/refresh", authH.Refresh)
	}

	// Storefront catalog — browsable without a session
	r.GET("/v1/productos", productosH.Listar)
	r.GET("/v1/productos/:id", productosH.ObtenerPorID)
	r.GET("/v1/categorias", categoriasH.Listar)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		staff := middleware.RequireRole("admin", "supervisor")
		admin := middleware.RequireRole("admin")
		cliente := middleware.RequireRole("cliente")

		// Catalog writes — staff only; stock has its own dedicated operations
		prods := v1.Group("/productos", staff)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
			prods.PATCH("/:id/stock", productosH.AjustarStock)
			prods.GET("/:id/movimientos", productosH.Movimientos)
		}
		v1.GET("/inventario/alertas", staff, productosH.AlertasStock)

		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.DELETE("/:id", categoriasH.Desactivar)
		}

		prov := v1.Group("/proveedores", staff)
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.ObtenerPorID)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Desactivar)
		}

		// Purchase ledger — pending → approved → received, or pending → rejected
		compras := v1.Group("/compras", staff)
		{
			compras.POST("", comprasH.Crear)
			compras.GET("", comprasH.Listar)
			compras.GET("/:id", comprasH.ObtenerPorID)
			compras.PATCH("/:id/aprobar", comprasH.Aprobar)
			compras.PATCH("/:id/rechazar", comprasH.Rechazar)
			compras.PATCH("/:id/recibir", comprasH.Recibir)
		}

		// Sales ledger
		ventas := v1.Group("/ventas", staff)
		{
			ventas.POST("", ventasH.Registrar)
			ventas.GET("", ventasH.Listar)
			ventas.GET("/export", ventasH.ExportarCSV)
			ventas.GET("/:id", ventasH.ObtenerPorID)
			ventas.GET("/:id/comprobante", ventasH.Comprobante)
			ventas.DELETE("/:id", ventasH.Anular)
			ventas.PATCH("/:id/envio", ventasH.AvanzarEnvio)
			ventas.PATCH("/:id/notas", ventasH.ActualizarNotas)
		}

		// Storefront customer surface
		v1.GET("/pedidos", cliente, ventasH.MisPedidos)
		carrito := v1.Group("/carrito", cliente)
		{
			carrito.GET("", carritoH.Obtener)
			carrito.POST("/items", carritoH.Agregar)
			carrito.DELETE("/items/:producto_id", carritoH.Quitar)
			carrito.DELETE("", carritoH.Vaciar)
			carrito.POST("/checkout", carritoH.Checkout)
		}

		// Support ticket log
		v1.POST("/soporte", cliente, soporteH.Publicar)
		v1.GET("/soporte", cliente, soporteH.MisTickets)
		v1.GET("/soporte/hilos", staff, soporteH.Hilos)
		v1.POST("/soporte/responder", staff, soporteH.Responder)

		// Reports
		v1.GET("/reportes/resumen", staff, reportesH.Resumen)

		// User management — admin only
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
