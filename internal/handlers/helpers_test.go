package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/auth"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/db"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/handlers"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
)

const (
	testSessionName   = "fd_session"
	testSessionSecret = "test-secret-key"
)

var handlerDBCounter int64

// setupRouter builds a router with the same route table as main and swaps the
// global DB for a fresh in-memory SQLite instance.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	n := atomic.AddInt64(&handlerDBCounter, 1)
	testDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", n)), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = testDB.AutoMigrate(
		&models.User{}, &models.Restaurant{}, &models.Product{},
		&models.Order{}, &models.OrderItem{}, &models.Payment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	originalDB := db.DB
	db.SetTestDB(testDB)
	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	// No gateway in tests: payments run on the simulated fallback path.
	handlers.InitPayments(nil, "usd")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sessions.Sessions(testSessionName, cookie.NewStore([]byte(testSessionSecret))))

	r.GET("/api/restaurants", handlers.ListRestaurants)
	r.GET("/api/restaurants/:id", handlers.GetRestaurant)
	r.GET("/api/restaurants/:id/products", handlers.ListProducts)
	r.GET("/api/products/average", handlers.GetAveragePrice)

	api := r.Group("/api")
	api.Use(auth.RequireAuth())
	{
		api.POST("/cart/add/:product_id", handlers.AddToCart)
		api.GET("/cart", handlers.GetCart)
		api.POST("/cart", handlers.UpdateCart)

		api.GET("/checkout", handlers.CheckoutSummary)
		api.POST("/checkout", handlers.Checkout)

		api.GET("/orders/my", handlers.MyOrders)
		api.POST("/orders/:order_id/confirm", handlers.ConfirmOrder)
		api.POST("/orders/:order_id/cancel", handlers.CancelOrder)
		api.GET("/orders/:order_id/track", handlers.TrackOrder)
		api.POST("/orders/:order_id/track/delivered", handlers.TrackMarkDelivered)

		api.POST("/payments/:order_id/intent", handlers.CreatePaymentIntent)
		api.GET("/payments/:payment_id", handlers.GetPayment)
		api.POST("/payments/:payment_id/simulate-success", handlers.SimulatePaymentSuccess)
		api.POST("/payments/:payment_id/simulate-failure", handlers.SimulatePaymentFailure)

		owner := api.Group("/owner")
		owner.Use(auth.RequireRole(models.RoleOwner))
		{
			owner.GET("/restaurants", handlers.OwnerRestaurants)
			owner.POST("/restaurants", handlers.CreateRestaurant)
			owner.PUT("/restaurants/:id", handlers.UpdateRestaurant)
			owner.POST("/restaurants/:id/products", handlers.CreateProduct)
			owner.PUT("/products/:product_id", handlers.UpdateProduct)
			owner.DELETE("/products/:product_id", handlers.DeleteProduct)
			owner.GET("/orders", handlers.OwnerOrders)
		}

		courier := api.Group("/courier")
		courier.Use(auth.RequireRole(models.RoleCourier))
		{
			courier.GET("/dashboard", handlers.CourierDashboard)
			courier.POST("/accept/:order_id", handlers.AcceptOrder)
			courier.POST("/start/:order_id", handlers.StartDelivery)
			courier.POST("/complete/:order_id", handlers.CompleteOrder)
		}
	}

	return r, testDB
}

// session is the set of values primed into the request's session cookie.
type session map[string]interface{}

// primeSessionCookie runs the session middleware against a throwaway context
// to produce a valid cookie carrying the given values.
func primeSessionCookie(t *testing.T, values session) string {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	sessions.Sessions(testSessionName, cookie.NewStore([]byte(testSessionSecret)))(c)

	sess := sessions.Default(c)
	for k, v := range values {
		sess.Set(k, v)
	}
	if err := sess.Save(); err != nil {
		t.Fatalf("failed to prime session: %v", err)
	}
	return w.Header().Get("Set-Cookie")
}

func asUser(u models.User) session {
	return session{"user_id": u.ID}
}

func withCart(s session, items map[uint]uint) session {
	s["cart"] = items
	return s
}

// doRequest performs a JSON request, priming the session cookie when values
// are given. A nil session simulates an anonymous caller.
func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, values session) *httptest.ResponseRecorder {
	t.Helper()
	buf := &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if values != nil {
		req.Header.Set("Cookie", primeSessionCookie(t, values))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doRequestWithCookies replays cookies from an earlier response, used to
// follow session mutations the server performed.
func doRequestWithCookies(t *testing.T, router *gin.Engine, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func orderPath(orderID uint, suffix string) string {
	return fmt.Sprintf("/api/orders/%d/%s", orderID, suffix)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
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
		customer: models.User{Username: "customer", Email: "customer@example.com", Role: models.RoleCustomer, PasswordHash: "x"},
		owner:    models.User{Username: "owner", Email: "owner@example.com", Role: models.RoleOwner, PasswordHash: "x"},
		courier:  models.User{Username: "courier", Email: "courier@example.com", Role: models.RoleCourier, PasswordHash: "x"},
	}
	for _, u := range []*models.User{&f.customer, &f.owner, &f.courier} {
		if err := gdb.Create(u).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	f.restaurant = models.Restaurant{OwnerID: f.owner.ID, Name: "Burger Barn", Address: "12 Main St", Category: "Burgers", IsOpen: true}
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

func seedOrder(t *testing.T, gdb *gorm.DB, f fixture, status models.OrderStatus, courierID *uint) models.Order {
	t.Helper()
	order := models.Order{
		UserID:          f.customer.ID,
		RestaurantID:    f.restaurant.ID,
		CourierID:       courierID,
		Status:          status,
		Subtotal:        25.00,
		Total:           25.00,
		DeliveryAddress: "5 Elm Street",
	}
	if err := gdb.Create(&order).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return order
}
