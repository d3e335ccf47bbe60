package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndthang/minimart/internal/middleware/auth"
	"github.com/ndthang/minimart/internal/service"
	"github.com/ndthang/minimart/internal/transport"
	"github.com/ndthang/minimart/internal/util"
)

type OrderHandler struct {
	Orders *service.OrderService
	Events EventPublisher
}

func orderFilterFromQuery(c echo.Context) transport.OrderFilter {
	return transport.OrderFilter{
		OrderID:       c.QueryParam("order_id"),
		CustomerID:    c.QueryParam("customer_id"),
		PaymentMethod: c.QueryParam("payment_method"),
		PaymentStatus: c.QueryParam("payment_status"),
		OrderStatus:   c.QueryParam("order_status"),
		Start:         util.ParseIntDefault(c.QueryParam("start"), -1),
		Num:           util.ParseIntDefault(c.QueryParam("num"), -1),
	}
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	username := auth.Username(c)

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	order, err := h.Orders.CreateOrder(ctx, req, username)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "order_events", order.OrderID, map[string]any{
		"type":     "order_created",
		"order_id": order.OrderID,
		"username": username,
		"price":    order.Price,
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"success": fmt.Sprintf("order '%s' created", order.OrderID),
		"order":   order,
	})
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.Orders.ListOrders(ctx, orderFilterFromQuery(c), auth.Username(c), auth.RoleOf(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders, "count": len(orders)})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("order_id")

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	order, err := h.Orders.UpdateOrderStatus(ctx, orderID, req)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "order_events", order.OrderID, map[string]any{
		"type":           "order_status_updated",
		"order_id":       order.OrderID,
		"order_status":   order.OrderStatus,
		"payment_status": order.PaymentStatus,
		"user":           auth.Username(c),
	})
	return c.JSON(http.StatusOK, echo.Map{
		"message": "order updated",
		"data":    order,
	})
}
