package transport

import (
	"math"
	"time"

	"github.com/ndthang/minimart/internal/models"
)

// NewCartView derives the cart totals at serialization time.
func NewCartView(cart *models.Cart) CartView {
	var total float64
	var count int
	for _, it := range cart.Items {
		total += it.Price * float64(it.Quantity)
		count += it.Quantity
	}
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return CartView{
		Username:   cart.Username,
		Items:      items,
		TotalPrice: math.Round(total*100) / 100,
		TotalItems: count,
		UpdatedAt:  cart.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
