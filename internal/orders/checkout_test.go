package orders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/cart"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/orders"
)

func TestCheckoutSnapshotsPricesAndTotals(t *testing.T) {
	gdb := newTestDB(t)
	f := seedFixture(t, gdb)

	snap := cart.Snapshot{f.productA.ID: 2, f.productB.ID: 1}
	order, err := orders.Checkout(gdb, &f.customer, snap, "5 Elm Street")
	assert.NoError(t, err)

	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.Equal(t, f.restaurant.ID, order.RestaurantID)
	assert.Equal(t, "5 Elm Street", order.DeliveryAddress)
	assert.InDelta(t, 25.00, order.Subtotal, 1e-9)
	assert.InDelta(t, 0.00, order.DeliveryFee, 1e-9)
	assert.InDelta(t, 25.00, order.Total, 1e-9)
	assert.InDelta(t, order.Subtotal+order.DeliveryFee, order.Total, 1e-9)

	var items []models.OrderItem
	assert.NoError(t, gdb.Where("order_id = ?", order.ID).Order("product_id").Find(&items).Error)
	assert.Len(t, items, 2)
	assert.InDelta(t, 10.00, items[0].PriceAtTime, 1e-9)
	assert.Equal(t, uint(2), items[0].Quantity)
	assert.InDelta(t, 5.00, items[1].PriceAtTime, 1e-9)
	assert.Equal(t, uint(1), items[1].Quantity)
}

func TestPriceEditsDoNotTouchExistingOrders(t *testing.T) {
	gdb := newTestDB(t)
	f := seedFixture(t, gdb)

	snap := cart.Snapshot{f.productA.ID: 2, f.productB.ID: 1}
	order, err := orders.Checkout(gdb, &f.customer, snap, "")
	assert.NoError(t, err)

	// Raise both catalog prices after the fact.
	assert.NoError(t, gdb.Model(&models.Product{}).Where("id = ?", f.productA.ID).Update("price", 99.99).Error)
	assert.NoError(t, gdb.Model(&models.Product{}).Where("id = ?", f.productB.ID).Update("price", 49.99).Error)

	var items []models.OrderItem
	assert.NoError(t, gdb.Where("order_id = ?", order.ID).Order("product_id").Find(&items).Error)
	assert.InDelta(t, 10.00, items[0].PriceAtTime, 1e-9)
	assert.InDelta(t, 5.00, items[1].PriceAtTime, 1e-9)

	var reloaded models.Order
	assert.NoError(t, gdb.First(&reloaded, order.ID).Error)
	assert.InDelta(t, 25.00, reloaded.Total, 1e-9)
}

func TestCheckoutEmptyCart(t *testing.T) {
	gdb := newTestDB(t)
	f := seedFixture(t, gdb)

	_, err := orders.Checkout(gdb, &f.customer, cart.Snapshot{}, "")
	assert.ErrorIs(t, err, orders.ErrEmptyCart)

	var count int64
	gdb.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutMixedRestaurants(t *testing.T) {
	gdb := newTestDB(t)
	f := seedFixture(t, gdb)

	other := models.Restaurant{OwnerID: f.owner.ID, Name: "Sushi World", IsOpen: true}
	assert.NoError(t, gdb.Create(&other).Error)
	foreign := models.Product{RestaurantID: other.ID, Name: "California Roll", Price: 8.50, IsAvailable: true}
	assert.NoError(t, gdb.Create(&foreign).Error)

	snap := cart.Snapshot{f.productA.ID: 1, foreign.ID: 1}
	_, err := orders.Checkout(gdb, &f.customer, snap, "")
	assert.ErrorIs(t, err, orders.ErrMixedRestaurants)

	var count int64
	gdb.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count, "no partial order may be created")

	// The snapshot itself is untouched so the caller can fix the cart.
	assert.Equal(t, uint(1), snap[f.productA.ID])
	assert.Equal(t, uint(1), snap[foreign.ID])
}

func TestCheckoutVanishedProduct(t *testing.T) {
	gdb := newTestDB(t)
	f := seedFixture(t, gdb)

	snap := cart.Snapshot{f.productA.ID: 1, f.productB.ID + 1000: 1}
	_, err := orders.Checkout(gdb, &f.customer, snap, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")

	var count int64
	gdb.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestResolveCartRendersMixedCart(t *testing.T) {
	gdb := newTestDB(t)
	f := seedFixture(t, gdb)

	other := models.Restaurant{OwnerID: f.owner.ID, Name: "Taco Fiesta", IsOpen: true}
	assert.NoError(t, gdb.Create(&other).Error)
	foreign := models.Product{RestaurantID: other.ID, Name: "Chicken Tacos", Price: 7.99, IsAvailable: true}
	assert.NoError(t, gdb.Create(&foreign).Error)

	snap := cart.Snapshot{f.productA.ID: 1, foreign.ID: 2}
	lines, _, subtotal, err := orders.ResolveCart(gdb, snap)
	assert.ErrorIs(t, err, orders.ErrMixedRestaurants)
	assert.Len(t, lines, 2, "cart view still gets the lines")
	assert.InDelta(t, 10.00+2*7.99, subtotal, 1e-9)
}
