package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndthang/minimart/internal/middleware/auth"
	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/service"
	"github.com/ndthang/minimart/internal/transport"
	"github.com/ndthang/minimart/internal/util"
)

type SupplierHandler struct {
	Suppliers *service.SupplierService
	Events    EventPublisher
}

func supplierFilterFromQuery(c echo.Context) transport.SupplierFilter {
	return transport.SupplierFilter{
		Code:   c.QueryParam("code"),
		Name:   c.QueryParam("name"),
		Email:  c.QueryParam("email"),
		Phone:  c.QueryParam("phone"),
		Status: c.QueryParam("status"),
		Start:  util.ParseIntDefault(c.QueryParam("start"), -1),
		Num:    util.ParseIntDefault(c.QueryParam("num"), -1),
	}
}

func (h *SupplierHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	role := auth.RoleOf(c)

	suppliers, err := h.Suppliers.ListSuppliers(ctx, supplierFilterFromQuery(c), role)
	if err != nil {
		return serviceError(c, err)
	}

	if role == models.RoleAdmin {
		return c.JSON(http.StatusOK, echo.Map{"suppliers": suppliers, "count": len(suppliers)})
	}
	views := make([]transport.SupplierView, 0, len(suppliers))
	for _, s := range suppliers {
		views = append(views, transport.SupplierView{
			Code:   s.Code,
			Name:   s.Name,
			Phone:  s.Phone,
			Email:  s.Email,
			Status: s.Status,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"suppliers": views, "count": len(views)})
}

func (h *SupplierHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.CreateSupplierRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	supplier, err := h.Suppliers.CreateSupplier(ctx, req)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "product_events", supplier.Code, map[string]any{
		"type": "supplier_created",
		"code": supplier.Code,
		"user": auth.Username(c),
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"success": fmt.Sprintf("supplier '%s' created", supplier.Code),
		"data":    supplier,
	})
}

func (h *SupplierHandler) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	code := c.Param("code")

	var req transport.PatchSupplierRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	supplier, err := h.Suppliers.PatchSupplier(ctx, code, req)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "product_events", supplier.Code, map[string]any{
		"type": "supplier_updated",
		"code": supplier.Code,
		"user": auth.Username(c),
	})
	return c.JSON(http.StatusOK, echo.Map{
		"success": fmt.Sprintf("supplier '%s' updated", supplier.Code),
		"data":    supplier,
	})
}

func (h *SupplierHandler) setStatus(c echo.Context, status string) error {
	ctx := c.Request().Context()
	code := c.Param("code")

	supplier, changed, err := h.Suppliers.SetSupplierStatus(ctx, code, status)
	if err != nil {
		return serviceError(c, err)
	}
	if !changed {
		return c.JSON(http.StatusOK, echo.Map{
			"message": fmt.Sprintf("supplier '%s' is already %s", code, status),
			"data":    supplier,
		})
	}

	publish(c, h.Events, "product_events", supplier.Code, map[string]any{
		"type":   "supplier_status_changed",
		"code":   supplier.Code,
		"status": status,
		"user":   auth.Username(c),
	})
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("supplier '%s' is now %s", code, status),
		"data":    supplier,
	})
}

func (h *SupplierHandler) Activate(c echo.Context) error {
	return h.setStatus(c, models.StatusActive)
}

func (h *SupplierHandler) Deactivate(c echo.Context) error {
	return h.setStatus(c, models.StatusInactive)
}

func (h *SupplierHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	code := c.Param("code")

	supplier, err := h.Suppliers.DeleteSupplier(ctx, code)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "product_events", supplier.Code, map[string]any{
		"type": "supplier_deleted",
		"code": supplier.Code,
		"user": auth.Username(c),
	})
	return c.JSON(http.StatusOK, echo.Map{
		"success": fmt.Sprintf("supplier '%s' deleted", supplier.Code),
	})
}
