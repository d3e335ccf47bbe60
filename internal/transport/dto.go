package transport

import "github.com/ndthang/minimart/internal/models"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type CreateProductRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	SupplierID    string  `json:"supplier_id"`
	SellPrice     float64 `json:"sell_price"`
	ImportPrice   float64 `json:"import_price"`
	TotalQuantity int     `json:"total_quantity"`
	Status        string  `json:"status"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url"`
}

// PatchProductRequest carries a partial update; nil means "leave untouched".
type PatchProductRequest struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	SupplierID    *string  `json:"supplier_id"`
	SellPrice     *float64 `json:"sell_price"`
	ImportPrice   *float64 `json:"import_price"`
	TotalQuantity *int     `json:"total_quantity"`
	Description   *string  `json:"description"`
	ImageURL      *string  `json:"image_url"`
}

type CreateSupplierRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

type PatchSupplierRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

type AddCartItemRequest struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

// CartView is the cart plus its derived totals.
type CartView struct {
	Username   string            `json:"username"`
	Items      []models.CartItem `json:"items"`
	TotalPrice float64           `json:"total_price"`
	TotalItems int               `json:"total_items"`
	UpdatedAt  string            `json:"updated_at"`
}

type OrderItemRequest struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderID         string                  `json:"order_id"`
	UserID          string                  `json:"user_id"`
	Items           []OrderItemRequest      `json:"items"`
	ShippingAddress *models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                  `json:"payment_method"`
	Note            string                  `json:"note"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus   *string `json:"order_status"`
	PaymentStatus *string `json:"payment_status"`
}

type CreateBatchRequest struct {
	BatchCode       string  `json:"batch_code"`
	ProductID       string  `json:"product_id"`
	ManufactureDate string  `json:"manufacture_date"`
	ExpiryDate      string  `json:"expiry_date"`
	ImportDate      string  `json:"import_date"`
	ImportPrice     float64 `json:"import_price"`
	Quantity        int     `json:"quantity"`
	Status          string  `json:"status"`
}

type PatchBatchRequest struct {
	ManufactureDate *string  `json:"manufacture_date"`
	ExpiryDate      *string  `json:"expiry_date"`
	ImportDate      *string  `json:"import_date"`
	ImportPrice     *float64 `json:"import_price"`
	Quantity        *int     `json:"quantity"`
	Status          *string  `json:"status"`
}

// Filters translate query-string input into typed repository queries.
// Start/Num implement skip-limit paging; negative values mean "no window".

type ProductFilter struct {
	Name         string
	Code         string
	Category     string
	SupplierName string
	SupplierCode string
	Status       string
	Start        int
	Num          int
}

type SupplierFilter struct {
	Code   string
	Name   string
	Email  string
	Phone  string
	Status string
	Start  int
	Num    int
}

type UserFilter struct {
	Username string
	Status   string
	Start    int
	Num      int
}

type OrderFilter struct {
	OrderID       string
	CustomerID    string
	PaymentMethod string
	PaymentStatus string
	OrderStatus   string
	Start         int
	Num           int
}

type BatchFilter struct {
	BatchCode string
	ProductID string
	Status    string
	Start     int
	Num       int
}

// ProductView is the reduced projection guests and users receive.
type ProductView struct {
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Category      string  `json:"category"`
	SellPrice     float64 `json:"sell_price"`
	TotalQuantity int     `json:"total_quantity"`
}

// SupplierView is the reduced supplier projection for non-admin callers.
type SupplierView struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// UserView never exposes the password hash column.
type UserView struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	Status   string      `json:"status"`
}
