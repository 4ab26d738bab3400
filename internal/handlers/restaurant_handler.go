package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/auth"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/db"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
)

type RestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	OpenHours   string `json:"open_hours"`
	Category    string `json:"category"`
	IsOpen      *bool  `json:"is_open"`
}

// GET /api/restaurants
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := db.DB.Order("name")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list restaurants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// GET /api/restaurants/:id — detail with available products.
func GetRestaurant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	var restaurant models.Restaurant
	if err := db.DB.Preload("Products", "is_available = ?", true).
		First(&restaurant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// POST /api/owner/restaurants
func CreateRestaurant(c *gin.Context) {
	user := auth.CurrentUser(c)

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		OwnerID:     user.ID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		OpenHours:   req.OpenHours,
		Category:    req.Category,
		IsOpen:      true,
	}
	if req.IsOpen != nil {
		restaurant.IsOpen = *req.IsOpen
	}
	if err := db.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

// PUT /api/owner/restaurants/:id — owner-scoped update.
func UpdateRestaurant(c *gin.Context) {
	user := auth.CurrentUser(c)
	restaurant := loadOwnRestaurant(c, user, c.Param("id"))
	if restaurant == nil {
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant.Name = req.Name
	restaurant.Description = req.Description
	restaurant.Address = req.Address
	restaurant.OpenHours = req.OpenHours
	restaurant.Category = req.Category
	if req.IsOpen != nil {
		restaurant.IsOpen = *req.IsOpen
	}
	if err := db.DB.Save(restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update restaurant"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// GET /api/owner/restaurants
func OwnerRestaurants(c *gin.Context) {
	user := auth.CurrentUser(c)
	var restaurants []models.Restaurant
	if err := db.DB.Where("owner_id = ?", user.ID).Order("name").Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list restaurants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// loadOwnRestaurant fetches a restaurant the user owns, writing the error
// response itself on failure.
func loadOwnRestaurant(c *gin.Context, user *models.User, idParam string) *models.Restaurant {
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return nil
	}

	var restaurant models.Restaurant
	if err := db.DB.Where("id = ? AND owner_id = ?", id, user.ID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return nil
	}
	return &restaurant
}
