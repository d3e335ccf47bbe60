package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ndthang/minimart/internal/middleware/auth"
	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/repo"
	"github.com/ndthang/minimart/internal/search"
	"github.com/ndthang/minimart/internal/service"
)

// Deps carries everything the route table needs. ES and Events are optional;
// nil disables search and event publishing respectively.
type Deps struct {
	DB        *gorm.DB
	JWTSecret []byte
	ES        *elasticsearch.Client
	Events    EventPublisher
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = errorHandler
	r := repo.New(d.DB)

	authSvc := &service.AuthService{Repo: r, JWTSecret: d.JWTSecret}
	catalogSvc := &service.CatalogService{Repo: r}
	supplierSvc := &service.SupplierService{Repo: r}
	userSvc := &service.UserService{Repo: r}
	cartSvc := &service.CartService{Repo: r}
	orderSvc := &service.OrderService{Repo: r}
	batchSvc := &service.BatchService{Repo: r}
	if d.ES != nil {
		catalogSvc.Index = search.NewIndexer(d.ES)
	}

	mw := &auth.Middleware{JWTSecret: d.JWTSecret}
	adminOnly := []echo.MiddlewareFunc{mw.RequireAuth, auth.RequireRole(models.RoleAdmin)}

	authH := &AuthHandler{Auth: authSvc, Events: d.Events}
	productH := &ProductHandler{Catalog: catalogSvc, ES: d.ES, Events: d.Events}
	supplierH := &SupplierHandler{Suppliers: supplierSvc, Events: d.Events}
	userH := &UserHandler{Users: userSvc}
	cartH := &CartHandler{Carts: cartSvc, Events: d.Events}
	orderH := &OrderHandler{Orders: orderSvc, Events: d.Events}
	batchH := &BatchHandler{Batches: batchSvc, Events: d.Events}

	e.GET("/health/live", healthLive)
	e.GET("/health/ready", healthReady(d.DB))

	e.POST("/auth/register", authH.Register)
	e.POST("/auth/login", authH.Login)

	e.GET("/products", productH.List, mw.OptionalAuth)
	e.GET("/products/search", productH.Search)
	e.PUT("/products", productH.Create, adminOnly...)
	e.PATCH("/products/active/:code", productH.Activate, adminOnly...)
	e.PATCH("/products/inactive/:code", productH.Deactivate, adminOnly...)
	e.PATCH("/products/:code", productH.Patch, adminOnly...)
	e.DELETE("/products/:code", productH.Delete, adminOnly...)

	e.GET("/suppliers", supplierH.List, mw.OptionalAuth)
	e.POST("/suppliers", supplierH.Create, adminOnly...)
	e.PATCH("/suppliers/active/:code", supplierH.Activate, adminOnly...)
	e.PATCH("/suppliers/inactive/:code", supplierH.Deactivate, adminOnly...)
	e.PATCH("/suppliers/:code", supplierH.Patch, adminOnly...)
	e.DELETE("/suppliers/:code", supplierH.Delete, adminOnly...)

	e.GET("/users", userH.List, adminOnly...)

	cart := e.Group("/cart", mw.RequireAuth)
	cart.GET("", cartH.Get)
	cart.PUT("", cartH.AddItem)
	cart.PATCH("/:product_id", cartH.UpdateItem)
	cart.DELETE("/:product_id", cartH.RemoveItem)
	cart.DELETE("", cartH.Clear)

	e.PUT("/orders", orderH.Create, mw.RequireAuth, auth.RequireRole(models.RoleUser))
	e.GET("/orders", orderH.List, mw.RequireAuth)
	e.PATCH("/orders/:order_id", orderH.UpdateStatus, adminOnly...)

	batches := e.Group("/batches", adminOnly...)
	batches.GET("", batchH.List)
	batches.POST("", batchH.Create)
	batches.PATCH("/:batch_code", batchH.Patch)
	batches.DELETE("/:batch_code", batchH.Delete)
}

func healthLive(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func healthReady(gdb *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		sqlDB, err := gdb.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}
}
