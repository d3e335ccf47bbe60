package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndthang/minimart/internal/logging"
	"github.com/ndthang/minimart/internal/models"
	"github.com/ndthang/minimart/internal/repo"
	"github.com/ndthang/minimart/internal/transport"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// NewOrderID builds a timestamped identifier with a short random suffix,
// e.g. ORD-20240131150405-3FA2B1.
func NewOrderID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102150405"), suffix)
}

// CreateOrder prices every line from the live catalog: the client-supplied
// per-item price is informational only and never trusted for the total. The
// order owner is always the authenticated username.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest, username string) (*models.Order, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: could not identify the user", ErrValidation)
	}
	if req.ShippingAddress == nil || req.ShippingAddress.ReceiverName == "" ||
		req.ShippingAddress.Phone == "" || req.ShippingAddress.FullAddress == "" {
		return nil, fmt.Errorf("%w: shipping_address is required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items must not be empty", ErrValidation)
	}

	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentMethodCOD
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: payment_method must be one of cod, momo, vnpay, banking", ErrValidation)
	}

	var (
		total float64
		items []models.OrderItem
	)
	for _, it := range req.Items {
		if it.ProductID == "" || it.Name == "" || it.Price < 0 {
			return nil, fmt.Errorf("%w: every item needs product_id, name, price and quantity", ErrValidation)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}

		product, err := s.Repo.GetProductByCode(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product '%s' does not exist", ErrValidation, it.ProductID)
			}
			return nil, err
		}
		if it.Quantity > product.TotalQuantity {
			return nil, fmt.Errorf(
				"%w: product '%s' has only %d in stock, you requested %d. Please adjust the quantity",
				ErrValidation, product.Name, product.TotalQuantity, it.Quantity,
			)
		}

		total += product.SellPrice * float64(it.Quantity)
		items = append(items, models.OrderItem{
			ProductID: product.Code,
			Name:      product.Name,
			Price:     product.SellPrice,
			Quantity:  it.Quantity,
		})
	}

	orderID := req.OrderID
	if orderID == "" {
		orderID = NewOrderID()
	}

	order := &models.Order{
		OrderID:         orderID,
		UserID:          username,
		Items:           items,
		ShippingAddress: *req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		OrderStatus:     models.OrderStatusProcessing,
		Price:           total,
		Note:            req.Note,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: order '%s' already exists", ErrConflict, orderID)
		}
		return nil, err
	}

	// Stock decrement is best-effort and NOT atomic with the insert: a failed
	// decrement is logged and swallowed, so a crash or a concurrent sale can
	// leave the order in place with stock never reduced.
	l := logging.FromContext(ctx)
	for _, it := range order.Items {
		if err := s.Repo.DecreaseProductQuantity(ctx, it.ProductID, it.Quantity); err != nil {
			l.Warn("stock_decrement_failed",
				"order_id", order.OrderID,
				"product_id", it.ProductID,
				"quantity", it.Quantity,
				"error", err,
			)
		}
	}

	return order, nil
}

// ListOrders scopes the result set by role: users only ever see their own
// orders (any client-supplied customer_id is overridden), admins see
// everything the filter matches, everyone else is rejected.
func (s *OrderService) ListOrders(ctx context.Context, f transport.OrderFilter, username string, role models.Role) ([]models.Order, error) {
	switch role {
	case models.RoleUser:
		f.CustomerID = username
	case models.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: access requires a signed-in account", ErrForbidden)
	}
	return s.Repo.GetOrdersByFilter(ctx, f)
}

// UpdateOrderStatus accepts only the two status fields, validates their
// values, and drops no-op fields before touching storage.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, req transport.UpdateOrderStatusRequest) (*models.Order, error) {
	order, err := s.Repo.GetOrderByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order does not exist", ErrNotFound)
		}
		return nil, err
	}

	if req.OrderStatus == nil && req.PaymentStatus == nil {
		return nil, fmt.Errorf("%w: no updatable field supplied", ErrValidation)
	}

	fields := map[string]any{}
	if req.OrderStatus != nil {
		switch *req.OrderStatus {
		case models.OrderStatusProcessing, models.OrderStatusSuccess, models.OrderStatusCancelled:
		default:
			return nil, fmt.Errorf("%w: order_status must be one of processing, success, cancelled", ErrValidation)
		}
		if *req.OrderStatus != order.OrderStatus {
			fields["order_status"] = *req.OrderStatus
		}
	}
	if req.PaymentStatus != nil {
		switch *req.PaymentStatus {
		case models.PaymentStatusPending, models.PaymentStatusCompleted:
		default:
			return nil, fmt.Errorf("%w: payment_status must be one of pending, completed", ErrValidation)
		}
		if *req.PaymentStatus != order.PaymentStatus {
			fields["payment_status"] = *req.PaymentStatus
		}
	}

	// Every recognized field already holds the requested value: nothing to do.
	if len(fields) == 0 {
		return order, nil
	}

	if err := s.Repo.UpdateOrderFields(ctx, orderID, fields); err != nil {
		return nil, err
	}
	return s.Repo.GetOrderByOrderID(ctx, orderID)
}
