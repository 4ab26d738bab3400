package orders

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/cart"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
)

var (
	// ErrEmptyCart is informational, not a fault; handlers redirect the
	// caller back to the cart view.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrMixedRestaurants rejects carts spanning more than one restaurant.
	// The cart is left untouched so the caller can fix it.
	ErrMixedRestaurants = errors.New("all items in the cart must be from the same restaurant")
)

// Line is a cart entry resolved against the catalog.
type Line struct {
	Product   models.Product `json:"product"`
	Quantity  uint           `json:"quantity"`
	LineTotal float64        `json:"line_total"`
}

// ResolveCart loads every product referenced by the snapshot and verifies
// the single-restaurant invariant. Line totals use the live catalog price;
// the snapshot into price_at_time happens at checkout. On a mixed cart the
// resolved lines are still returned alongside ErrMixedRestaurants so the
// cart view can render what the caller needs to fix.
func ResolveCart(gdb *gorm.DB, snap cart.Snapshot) ([]Line, uint, float64, error) {
	if snap.IsEmpty() {
		return nil, 0, 0, ErrEmptyCart
	}

	ids := make([]uint, 0, len(snap))
	for id := range snap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var restaurantID uint
	mixed := false
	lines := make([]Line, 0, len(ids))
	subtotal := 0.0
	for _, id := range ids {
		var product models.Product
		if err := gdb.First(&product, id).Error; err != nil {
			return nil, 0, 0, fmt.Errorf("product not found with ID: %d: %w", id, err)
		}
		if restaurantID == 0 {
			restaurantID = product.RestaurantID
		} else if restaurantID != product.RestaurantID {
			mixed = true
		}
		qty := snap[id]
		line := Line{Product: product, Quantity: qty, LineTotal: product.Price * float64(qty)}
		lines = append(lines, line)
		subtotal += line.LineTotal
	}
	if mixed {
		return lines, 0, subtotal, ErrMixedRestaurants
	}
	return lines, restaurantID, subtotal, nil
}

// Checkout turns a cart snapshot into a placed order. The order header and
// all line items are created in one transaction; a product vanishing mid-way
// aborts the whole thing and no partial order survives. Clearing the session
// cart is the caller's job and must only happen on success.
func Checkout(gdb *gorm.DB, user *models.User, snap cart.Snapshot, deliveryAddress string) (*models.Order, error) {
	lines, restaurantID, _, err := ResolveCart(gdb, snap)
	if err != nil {
		return nil, err
	}

	var order models.Order
	err = gdb.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			UserID:          user.ID,
			RestaurantID:    restaurantID,
			Status:          models.StatusPlaced,
			DeliveryAddress: deliveryAddress,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.Product.ID,
				Quantity:    line.Quantity,
				PriceAtTime: line.Product.Price,
			})
		}
		if err := tx.CreateInBatches(&items, len(items)).Error; err != nil {
			return err
		}

		order.Items = items
		order.RecalcTotals()
		return tx.Model(&order).Updates(map[string]interface{}{
			"subtotal":     order.Subtotal,
			"delivery_fee": order.DeliveryFee,
			"total":        order.Total,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
