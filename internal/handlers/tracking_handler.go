package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/auth"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/db"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/orders"
)

// GET /api/orders/:order_id/track — read-only projection of the order status
// for the customer's tracking page.
func TrackOrder(c *gin.Context) {
	user := auth.CurrentUser(c)
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var order models.Order
	if err := db.DB.Preload("Restaurant").
		Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	restLat, restLng := orders.FakeCoordinates(order.Restaurant.Address)
	destLat, destLng := orders.FakeCoordinates(order.DeliveryAddress)

	c.JSON(http.StatusOK, gin.H{
		"id":               order.ID,
		"status":           order.Status,
		"step":             orders.StepIndex(order.Status),
		"courier_position": orders.Position(order.Status),
		"restaurant":       gin.H{"lat": restLat, "lng": restLng},
		"destination":      gin.H{"lat": destLat, "lng": destLng},
	})
}

// POST /api/orders/:order_id/track/delivered — the customer confirms receipt.
// Same transition arm as the courier's complete action.
func TrackMarkDelivered(c *gin.Context) {
	applyTransition(c, orders.ActionComplete)
}
