package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/auth"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/db"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
)

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    uint    `json:"quantity"`
	Category    string  `json:"category"`
	IsAvailable *bool   `json:"is_available"`
}

// GET /api/restaurants/:id/products
func ListProducts(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	var products []models.Product
	if err := db.DB.Where("restaurant_id = ?", restaurantID).Order("name").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// POST /api/owner/restaurants/:id/products
func CreateProduct(c *gin.Context) {
	user := auth.CurrentUser(c)
	restaurant := loadOwnRestaurant(c, user, c.Param("id"))
	if restaurant == nil {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Quantity:     req.Quantity,
		Category:     req.Category,
		IsAvailable:  true,
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if err := db.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// PUT /api/owner/products/:product_id — price edits here never touch
// existing order items; those carry their own snapshot.
func UpdateProduct(c *gin.Context) {
	user := auth.CurrentUser(c)
	product := loadOwnProduct(c, user)
	if product == nil {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Quantity = req.Quantity
	product.Category = req.Category
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if err := db.DB.Save(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DELETE /api/owner/products/:product_id
func DeleteProduct(c *gin.Context) {
	user := auth.CurrentUser(c)
	product := loadOwnProduct(c, user)
	if product == nil {
		return
	}

	if err := db.DB.Delete(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("deleted product %d", product.ID)})
}

// GET /api/products/average?restaurant_id=N — average catalog price for one
// restaurant, optionally narrowed to a category.
func GetAveragePrice(c *gin.Context) {
	restaurantIDParam := c.Query("restaurant_id")
	if restaurantIDParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant_id is required"})
		return
	}

	var restaurantID uint
	if _, err := fmt.Sscan(restaurantIDParam, &restaurantID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant_id"})
		return
	}

	query := db.DB.Model(&models.Product{}).Where("restaurant_id = ?", restaurantID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var avg float64
	if err := query.Select("COALESCE(AVG(price), 0)").Scan(&avg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurant_id": restaurantID, "average_price": avg})
}

func loadOwnProduct(c *gin.Context, user *models.User) *models.Product {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return nil
	}

	var product models.Product
	err = db.DB.Joins("JOIN restaurants ON restaurants.id = products.restaurant_id").
		Where("products.id = ? AND restaurants.owner_id = ?", id, user.ID).
		First(&product).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return nil
	}
	return &product
}
