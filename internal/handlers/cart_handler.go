package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/cart"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/db"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/orders"
)

type AddToCartRequest struct {
	Quantity uint `json:"quantity"`
}

// POST /api/cart/add/:product_id
func AddToCart(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req AddToCartRequest
	// Body is optional; a bare POST adds one unit.
	_ = c.ShouldBindJSON(&req)
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	var product models.Product
	if err := db.DB.Where("id = ? AND is_available = ?", productID, true).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	snap := cart.Load(c)
	snap.Add(product.ID, req.Quantity)
	if err := cart.Save(c, snap); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "added " + product.Name + " to your cart",
		"restaurant_id": product.RestaurantID,
	})
}

// GET /api/cart
func GetCart(c *gin.Context) {
	snap := cart.Load(c)
	if snap.IsEmpty() {
		c.JSON(http.StatusOK, gin.H{"items": []orders.Line{}, "subtotal": 0})
		return
	}

	lines, _, subtotal, err := orders.ResolveCart(db.DB, snap)
	if err != nil && err != orders.ErrMixedRestaurants {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	// A mixed cart still renders; only checkout rejects it.
	c.JSON(http.StatusOK, gin.H{"items": lines, "subtotal": subtotal})
}

type UpdateCartRequest struct {
	Quantities map[string]uint `json:"quantities" binding:"required"`
}

// POST /api/cart — bulk quantity update; zero removes a line.
func UpdateCart(c *gin.Context) {
	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantities required"})
		return
	}

	snap := cart.Load(c)
	for idStr, qty := range req.Quantities {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			continue
		}
		if _, inCart := snap[uint(id)]; inCart {
			snap.SetQuantity(uint(id), qty)
		}
	}
	if err := cart.Save(c, snap); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
}
