package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndthang/minimart/internal/middleware/auth"
	"github.com/ndthang/minimart/internal/service"
	"github.com/ndthang/minimart/internal/transport"
)

type CartHandler struct {
	Carts  *service.CartService
	Events EventPublisher
}

func (h *CartHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	username := auth.Username(c)

	cart, err := h.Carts.GetCart(ctx, username)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, transport.NewCartView(cart))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	username := auth.Username(c)

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	cart, err := h.Carts.AddItem(ctx, username, req)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "cart_events", username, map[string]any{
		"type":       "cart_item_added",
		"username":   username,
		"product_id": req.ProductID,
	})
	return c.JSON(http.StatusOK, transport.NewCartView(cart))
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	username := auth.Username(c)
	productID := c.Param("product_id")

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Quantity == nil {
		return errorJSON(c, http.StatusBadRequest, "quantity is required")
	}

	cart, err := h.Carts.UpdateItemQuantity(ctx, username, productID, *req.Quantity)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "cart_events", username, map[string]any{
		"type":       "cart_item_updated",
		"username":   username,
		"product_id": productID,
		"quantity":   *req.Quantity,
	})
	return c.JSON(http.StatusOK, transport.NewCartView(cart))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	username := auth.Username(c)
	productID := c.Param("product_id")

	cart, err := h.Carts.RemoveItem(ctx, username, productID)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "cart_events", username, map[string]any{
		"type":       "cart_item_removed",
		"username":   username,
		"product_id": productID,
	})
	return c.JSON(http.StatusOK, transport.NewCartView(cart))
}

func (h *CartHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	username := auth.Username(c)

	cart, err := h.Carts.ClearCart(ctx, username)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Events, "cart_events", username, map[string]any{
		"type":     "cart_cleared",
		"username": username,
	})
	return c.JSON(http.StatusOK, transport.NewCartView(cart))
}
