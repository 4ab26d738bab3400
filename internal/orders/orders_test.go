package orders_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
)

var testDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	n := atomic.AddInt64(&testDBCounter, 1)
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:orders_test_%d?mode=memory&cache=shared", n)), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = gdb.AutoMigrate(
		&models.User{}, &models.Restaurant{}, &models.Product{},
		&models.Order{}, &models.OrderItem{}, &models.Payment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

type fixture struct {
	customer   models.User
	owner      models.User
	courier    models.User
	restaurant models.Restaurant
	productA   models.Product
	productB   models.Product
}

func seedFixture(t *testing.T, gdb *gorm.DB) fixture {
	t.Helper()
	f := fixture{
		customer: models.User{Username: "customer", Role: models.RoleCustomer, PasswordHash: "x"},
		owner:    models.User{Username: "owner", Role: models.RoleOwner, PasswordHash: "x"},
		courier:  models.User{Username: "courier", Role: models.RoleCourier, PasswordHash: "x"},
	}
	for _, u := range []*models.User{&f.customer, &f.owner, &f.courier} {
		if err := gdb.Create(u).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	f.restaurant = models.Restaurant{OwnerID: f.owner.ID, Name: "Burger Barn", Address: "12 Main St", IsOpen: true}
	if err := gdb.Create(&f.restaurant).Error; err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}

	f.productA = models.Product{RestaurantID: f.restaurant.ID, Name: "Classic Cheeseburger", Price: 10.00, IsAvailable: true}
	f.productB = models.Product{RestaurantID: f.restaurant.ID, Name: "Loaded Fries", Price: 5.00, IsAvailable: true}
	for _, p := range []*models.Product{&f.productA, &f.productB} {
		if err := gdb.Create(p).Error; err != nil {
			t.Fatalf("failed to seed product: %v", err)
		}
	}
	return f
}

func placedOrder(t *testing.T, gdb *gorm.DB, f fixture) models.Order {
	t.Helper()
	order := models.Order{
		UserID:       f.customer.ID,
		RestaurantID: f.restaurant.ID,
		Status:       models.StatusPlaced,
		Subtotal:     25.00,
		Total:        25.00,
	}
	if err := gdb.Create(&order).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return order
}
