package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/auth"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/db"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/notifier"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/orders"
)

// GET /api/courier/dashboard — available, active and delivered orders for
// the calling courier.
func CourierDashboard(c *gin.Context) {
	user := auth.CurrentUser(c)

	var available, active, delivered []models.Order
	if err := db.DB.Where("status = ? AND courier_id IS NULL", models.StatusConfirmed).
		Order("created_at").Find(&available).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	if err := db.DB.Where("courier_id = ? AND status IN ?", user.ID,
		[]models.OrderStatus{models.StatusAccepted, models.StatusPickedUp}).
		Order("created_at").Find(&active).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	if err := db.DB.Where("courier_id = ? AND status = ?", user.ID, models.StatusDelivered).
		Order("created_at DESC").Find(&delivered).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available_orders":    available,
		"my_active_orders":    active,
		"my_delivered_orders": delivered,
	})
}

// POST /api/courier/accept/:order_id — claim a confirmed, unassigned order.
func AcceptOrder(c *gin.Context) {
	applyTransition(c, orders.ActionAccept)
}

// POST /api/courier/start/:order_id — assigned courier picks the order up.
func StartDelivery(c *gin.Context) {
	applyTransition(c, orders.ActionStart)
}

// POST /api/courier/complete/:order_id — assigned courier hands the order over.
func CompleteOrder(c *gin.Context) {
	user := auth.CurrentUser(c)
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := orders.Transition(db.DB, uint(orderID), orders.ActionComplete, user)
	if err == nil {
		var customer models.User
		if db.DB.First(&customer, order.UserID).Error == nil {
			go func(email, name string, id uint) {
				if err := notifier.SendOrderDeliveredEmail(email, name, id); err != nil {
					logrus.WithError(err).Warnf("failed to send delivery email for order %d", id)
				}
			}(customer.Email, customer.Username, order.ID)
		}
	}
	respondTransition(c, order, err)
}
