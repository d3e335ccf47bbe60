package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/transport"
)

func validOrderRequest(productCode string, qty int) transport.CreateOrderRequest {
	return transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{
			{ProductID: productCode, Name: "whatever", Price: 1, Quantity: qty},
		},
		ShippingAddress: &models.ShippingAddress{
			ReceiverName: "Alice",
			Phone:        "0123456789",
			FullAddress:  "1 Main St",
		},
	}
}

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	r := newTestRepo(t)
	seedSupplier(t, r, "SUP-1")
	seedProduct(t, r, "P-1", 10, 25.5)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	req := validOrderRequest("P-1", 3)
	// deliberately wrong client price, the live sell_price must win
	req.Items[0].Price = 0.01

	order, err := svc.CreateOrder(ctx, req, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", order.UserID)
	require.Equal(t, 76.5, order.Price)
	require.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	require.Equal(t, models.OrderStatusProcessing, order.OrderStatus)
	require.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	require.True(t, strings.HasPrefix(order.OrderID, "ORD-"))
	require.Len(t, order.Items, 1)
	require.Equal(t, 25.5, order.Items[0].Price)

	// stock was decremented after the insert
	p, err := r.GetProductByCode(ctx, "P-1")
	require.NoError(t, err)
	require.Equal(t, 7, p.TotalQuantity)
}

func TestCreateOrderStockShortfall(t *testing.T) {
	r := newTestRepo(t)
	seedSupplier(t, r, "SUP-1")
	seedProduct(t, r, "P-1", 2, 10)
	svc := &OrderService{Repo: r}

	_, err := svc.CreateOrder(context.Background(), validOrderRequest("P-1", 5), "alice")
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "has only 2 in stock, you requested 5")
}

func TestCreateOrderValidation(t *testing.T) {
	r := newTestRepo(t)
	seedSupplier(t, r, "SUP-1")
	seedProduct(t, r, "P-1", 10, 10)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	req := validOrderRequest("P-1", 1)
	req.ShippingAddress = nil
	_, err := svc.CreateOrder(ctx, req, "alice")
	require.ErrorIs(t, err, ErrValidation)

	req = validOrderRequest("P-1", 1)
	req.Items = nil
	_, err = svc.CreateOrder(ctx, req, "alice")
	require.ErrorIs(t, err, ErrValidation)

	req = validOrderRequest("MISSING", 1)
	_, err = svc.CreateOrder(ctx, req, "alice")
	require.ErrorIs(t, err, ErrValidation)

	req = validOrderRequest("P-1", 1)
	req.PaymentMethod = "cheque"
	_, err = svc.CreateOrder(ctx, req, "alice")
	require.ErrorIs(t, err, ErrValidation)
}

func TestListOrdersScoping(t *testing.T) {
	r := newTestRepo(t)
	seedSupplier(t, r, "SUP-1")
	seedProduct(t, r, "P-1", 100, 10)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, validOrderRequest("P-1", 1), "alice")
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, validOrderRequest("P-1", 1), "bob")
	require.NoError(t, err)

	// a user asking for someone else's orders still only gets their own
	orders, err := svc.ListOrders(ctx, transport.OrderFilter{CustomerID: "bob", Start: -1, Num: -1}, "alice", models.RoleUser)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "alice", orders[0].UserID)

	orders, err = svc.ListOrders(ctx, transport.OrderFilter{Start: -1, Num: -1}, "admin", models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	_, err = svc.ListOrders(ctx, transport.OrderFilter{Start: -1, Num: -1}, "", models.RoleGuest)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateOrderStatus(t *testing.T) {
	r := newTestRepo(t)
	seedSupplier(t, r, "SUP-1")
	seedProduct(t, r, "P-1", 100, 10)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, validOrderRequest("P-1", 1), "alice")
	require.NoError(t, err)

	success := models.OrderStatusSuccess
	updated, err := svc.UpdateOrderStatus(ctx, order.OrderID, transport.UpdateOrderStatusRequest{OrderStatus: &success})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusSuccess, updated.OrderStatus)

	// flipping to the value it already has succeeds without a write
	updated, err = svc.UpdateOrderStatus(ctx, order.OrderID, transport.UpdateOrderStatusRequest{OrderStatus: &success})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusSuccess, updated.OrderStatus)

	bogus := "shipped"
	_, err = svc.UpdateOrderStatus(ctx, order.OrderID, transport.UpdateOrderStatusRequest{OrderStatus: &bogus})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateOrderStatus(ctx, order.OrderID, transport.UpdateOrderStatusRequest{})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateOrderStatus(ctx, "ORD-NOPE", transport.UpdateOrderStatusRequest{OrderStatus: &success})
	require.ErrorIs(t, err, ErrNotFound)
}
