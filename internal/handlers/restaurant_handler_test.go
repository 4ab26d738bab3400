package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/handlers"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
)

func TestListRestaurants(t *testing.T) {
	router, testDB := setupRouter(t)
	f := seedFixture(t, testDB)

	sushi := models.Restaurant{OwnerID: f.owner.ID, Name: "Sushi World", Category: "Sushi", IsOpen: true}
	assert.NoError(t, testDB.Create(&sushi).Error)

	w := doRequest(t, router, http.MethodGet, "/api/restaurants", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["restaurants"], 2)

	w = doRequest(t, router, http.MethodGet, "/api/restaurants?category=Sushi", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["restaurants"], 1)
}

func TestGetRestaurantShowsOnlyAvailableProducts(t *testing.T) {
	router, testDB := setupRouter(t)
	f := seedFixture(t, testDB)

	assert.NoError(t, testDB.Model(&models.Product{}).
		Where("id = ?", f.productB.ID).Update("is_available", false).Error)

	w := doRequest(t, router, http.MethodGet,
		fmt.Sprintf("/api/restaurants/%d", f.restaurant.ID), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Burger Barn", body["name"])
	assert.Len(t, body["products"], 1)

	w = doRequest(t, router, http.MethodGet, "/api/restaurants/9999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRestaurant(t *testing.T) {
	router, testDB := setupRouter(t)
	f := seedFixture(t, testDB)

	w := doRequest(t, router, http.MethodPost, "/api/owner/restaurants", handlers.RestaurantRequest{
		Name:     "Pasta Palace",
		Address:  "3 River Road",
		Category: "Italian",
	}, asUser(f.owner))
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Pasta Palace", body["name"])
	assert.Equal(t, true, body["is_open"])

	var stored models.Restaurant
	assert.NoError(t, testDB.Where("name = ?", "Pasta Palace").First(&stored).Error)
	assert.Equal(t, f.owner.ID, stored.OwnerID)

	// Couriers cannot create restaurants.
	w = doRequest(t, router, http.MethodPost, "/api/owner/restaurants", handlers.RestaurantRequest{
		Name: "Rogue Kitchen",
	}, asUser(f.courier))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateRestaurantScopedToOwner(t *testing.T) {
	router, testDB := setupRouter(t)
	f := seedFixture(t, testDB)
	path := fmt.Sprintf("/api/owner/restaurants/%d", f.restaurant.ID)

	closed := false
	w := doRequest(t, router, http.MethodPut, path, handlers.RestaurantRequest{
		Name:   "Burger Barn",
		IsOpen: &closed,
	}, asUser(f.owner))
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Restaurant
	assert.NoError(t, testDB.First(&stored, f.restaurant.ID).Error)
	assert.False(t, stored.IsOpen)

	otherOwner := models.User{Username: "other-owner", Role: models.RoleOwner, PasswordHash: "x"}
	assert.NoError(t, testDB.Create(&otherOwner).Error)
	w = doRequest(t, router, http.MethodPut, path, handlers.RestaurantRequest{
		Name: "Hijacked Barn",
	}, asUser(otherOwner))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOwnerRestaurants(t *testing.T) {
	router, testDB := setupRouter(t)
	f := seedFixture(t, testDB)

	otherOwner := models.User{Username: "other-owner", Role: models.RoleOwner, PasswordHash: "x"}
	assert.NoError(t, testDB.Create(&otherOwner).Error)

	w := doRequest(t, router, http.MethodGet, "/api/owner/restaurants", nil, asUser(f.owner))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["restaurants"], 1)

	w = doRequest(t, router, http.MethodGet, "/api/owner/restaurants", nil, asUser(otherOwner))
	assert.Empty(t, decodeBody(t, w)["restaurants"])
}
