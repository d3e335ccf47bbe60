package httpserver

import (
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/ndthang/minimart/internal/middleware/auth"
	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/search"
	"github.com/ndthang/minimart/internal/service"
	"github.com/ndthang/minimart/internal/transport"
	"github.com/ndthang/minimart/internal/util"
)

type ProductHandler struct {
	Catalog *service.CatalogService
	ES      *elasticsearch.Client
	Events  EventPublisher
}

func productFilterFromQuery(c echo.Context) transport.ProductFilter {
	return transport.ProductFilter{
		Name:         c.QueryParam("name"),
		Code:         c.QueryParam("product_code"),
		Category:     c.QueryParam("category"),
		SupplierName: c.QueryParam("supplier_name"),
		SupplierCode: c.QueryParam("supplier_code"),
		Status:       c.QueryParam("status"),
		Start:        util.ParseIntDefault(c.QueryParam("start"), -1),
		Num:          util.ParseIntDefault(c.QueryParam("num"), -1),
	}
}

func productViews(products []models.Product) []transport.ProductView {
	views := make([]transport.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, transport.ProductView{
			Name:          p.Name,
			Code:          p.Code,
			Category:      p.Category,
			SellPrice:     p.SellPrice,
			TotalQuantity: p.TotalQuantity,
		})
	}
	return views
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	role := auth.RoleOf(c)

	products, err := h.Catalog.ListProducts(ctx, productFilterFromQuery(c), role)
	if err != nil {
		return serviceError(c, err)
	}

	if role == models.RoleAdmin {
		return c.JSON(http.StatusOK, echo.Map{"products": products, "count": len(products)})
	}
	views := productViews(products)
	return c.JSON(http.StatusOK, echo.Map{"products": views, "count": len(views)})
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	product, err := h.Catalog.CreateProduct(ctx, req)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "product_events", product.Code, map[string]any{
		"type": "product_created",
		"code": product.Code,
		"user": auth.Username(c),
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"success": fmt.Sprintf("product '%s' created", product.Code),
		"data":    product,
	})
}

func (h *ProductHandler) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	code := c.Param("code")

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	product, err := h.Catalog.PatchProduct(ctx, code, req)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "product_events", product.Code, map[string]any{
		"type": "product_updated",
		"code": product.Code,
		"user": auth.Username(c),
	})
	return c.JSON(http.StatusOK, echo.Map{
		"success": fmt.Sprintf("product '%s' updated", product.Code),
		"data":    product,
	})
}

func (h *ProductHandler) setStatus(c echo.Context, status string) error {
	ctx := c.Request().Context()
	code := c.Param("code")

	product, changed, err := h.Catalog.SetProductStatus(ctx, code, status)
	if err != nil {
		return serviceError(c, err)
	}
	if !changed {
		return c.JSON(http.StatusOK, echo.Map{
			"message": fmt.Sprintf("product '%s' is already %s", code, status),
			"data":    product,
		})
	}

	publish(c, h.Events, "product_events", product.Code, map[string]any{
		"type":   "product_status_changed",
		"code":   product.Code,
		"status": status,
		"user":   auth.Username(c),
	})
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("product '%s' is now %s", code, status),
		"data":    product,
	})
}

func (h *ProductHandler) Activate(c echo.Context) error {
	return h.setStatus(c, models.StatusActive)
}

func (h *ProductHandler) Deactivate(c echo.Context) error {
	return h.setStatus(c, models.StatusInactive)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	code := c.Param("code")

	product, err := h.Catalog.DeleteProduct(ctx, code)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "product_events", product.Code, map[string]any{
		"type": "product_deleted",
		"code": product.Code,
		"user": auth.Username(c),
	})
	return c.JSON(http.StatusOK, echo.Map{
		"success": fmt.Sprintf("product '%s' deleted", product.Code),
	})
}

func (h *ProductHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	if h.ES == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "search is not available")
	}
	query := c.QueryParam("q")
	if query == "" {
		return errorJSON(c, http.StatusBadRequest, "q is required")
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := search.Search(ctx, h.ES, search.ProductIndex, query, from, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"products": productViews(products),
		"total":    total,
		"page":     page,
		"size":     limit,
	})
}
