package models

import (
	"time"
)

type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole rejects anything outside the closed role set. Tokens are signed,
// but an unknown role value inside a valid token is still treated as invalid.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleGuest, RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

const (
	OrderStatusProcessing = "processing"
	OrderStatusSuccess    = "success"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

const (
	PaymentMethodCOD     = "cod"
	PaymentMethodMomo    = "momo"
	PaymentMethodVNPay   = "vnpay"
	PaymentMethodBanking = "banking"
)

func ValidPaymentMethod(s string) bool {
	switch s {
	case PaymentMethodCOD, PaymentMethodMomo, PaymentMethodVNPay, PaymentMethodBanking:
		return true
	}
	return false
}

const (
	BatchStatusAvailable   = "available"
	BatchStatusUnavailable = "unavailable"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"uniqueIndex;not null"     json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         Role   `gorm:"not null;default:user"    json:"role"`
	Status       string `gorm:"not null;default:active"  json:"status"`
}

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string    `gorm:"uniqueIndex;not null"     json:"code"`
	Name          string    `gorm:"index;not null"           json:"name"`
	Category      string    `gorm:"index"                    json:"category"`
	SupplierID    string    `gorm:"index;not null"           json:"supplier_id"`
	SellPrice     float64   `gorm:"not null"                 json:"sell_price"`
	ImportPrice   float64   `gorm:"not null"                 json:"import_price"`
	TotalQuantity int       `gorm:"not null;default:0;check:total_quantity>=0" json:"total_quantity"`
	Status        string    `gorm:"not null;default:active"  json:"status"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Supplier struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null"     json:"code"`
	Name      string    `gorm:"index;not null"           json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Status    string    `gorm:"not null;default:active"  json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cart is one-per-username; line items live in cart_items and are always
// loaded with the cart. Totals are derived at serialization time, never stored.
type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"-"`
	Username  string     `gorm:"uniqueIndex;not null"     json:"username"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	CartID      uint    `gorm:"index;not null"           json:"-"`
	ProductID   string  `gorm:"not null"                 json:"product_id"`
	ProductName string  `gorm:"not null"                 json:"product_name"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Quantity    int     `gorm:"not null;check:quantity>0" json:"quantity"`
	ImageURL    string  `json:"image_url"`
}

type ShippingAddress struct {
	ReceiverName string `json:"receiver_name"`
	Phone        string `json:"phone"`
	FullAddress  string `json:"full_address"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID         string          `gorm:"uniqueIndex;not null"     json:"order_id"`
	UserID          string          `gorm:"index;not null"           json:"user_id"`
	Items           []OrderItem     `gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentMethod   string          `gorm:"not null;default:cod"        json:"payment_method"`
	PaymentStatus   string          `gorm:"not null;default:pending"    json:"payment_status"`
	OrderStatus     string          `gorm:"not null;default:processing" json:"order_status"`
	Price           float64         `gorm:"not null"                    json:"price"`
	Note            string          `json:"note"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItem snapshots the product at order time; later price or name changes
// do not rewrite history.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderRef  uint    `gorm:"index;not null"           json:"-"`
	ProductID string  `gorm:"not null"                 json:"product_id"`
	Name      string  `gorm:"not null"                 json:"name"`
	Price     float64 `gorm:"not null"                 json:"price"`
	Quantity  int     `gorm:"not null;check:quantity>0" json:"quantity"`
}

type Batch struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BatchCode       string    `gorm:"uniqueIndex;not null"     json:"batch_code"`
	ProductID       string    `gorm:"index;not null"           json:"product_id"`
	ManufactureDate time.Time `json:"manufacture_date"`
	ExpiryDate      time.Time `json:"expiry_date"`
	ImportDate      time.Time `json:"import_date"`
	ImportPrice     float64   `gorm:"not null"                 json:"import_price"`
	Quantity        int       `gorm:"not null;default:0"       json:"quantity"`
	Status          string    `gorm:"not null;default:available" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
