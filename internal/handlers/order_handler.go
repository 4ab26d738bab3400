package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/auth"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/cart"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/db"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/notifier"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/orders"
)

// GET /api/checkout — cart summary before placing the order.
func CheckoutSummary(c *gin.Context) {
	snap := cart.Load(c)
	lines, restaurantID, subtotal, err := orders.ResolveCart(db.DB, snap)
	switch {
	case errors.Is(err, orders.ErrEmptyCart):
		c.JSON(http.StatusOK, gin.H{"info": "your cart is empty", "redirect": "/api/cart"})
	case errors.Is(err, orders.ErrMixedRestaurants):
		c.JSON(http.StatusBadRequest, gin.H{"error": orders.ErrMixedRestaurants.Error()})
	case err != nil:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{
			"items":         lines,
			"restaurant_id": restaurantID,
			"subtotal":      subtotal,
		})
	}
}

type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address"`
}

// POST /api/checkout — snapshot prices, create the order, clear the cart.
func Checkout(c *gin.Context) {
	user := auth.CurrentUser(c)

	var req CheckoutRequest
	_ = c.ShouldBindJSON(&req)

	snap := cart.Load(c)
	order, err := orders.Checkout(db.DB, user, snap, req.DeliveryAddress)
	switch {
	case errors.Is(err, orders.ErrEmptyCart):
		// Informational, not a fault; the cart is where to go next.
		c.JSON(http.StatusOK, gin.H{"info": "your cart is empty", "redirect": "/api/cart"})
		return
	case errors.Is(err, orders.ErrMixedRestaurants):
		// Cart stays as-is so the caller can fix it.
		c.JSON(http.StatusBadRequest, gin.H{"error": orders.ErrMixedRestaurants.Error()})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}

	if err := cart.Clear(c); err != nil {
		logrus.WithError(err).Warnf("order %d created but cart not cleared", order.ID)
	}

	go func(user models.User, orderID uint, total float64) {
		if err := notifier.SendOrderPlacedSMS(user.Phone, orderID, total); err != nil {
			logrus.WithError(err).Warnf("failed to send SMS for order %d", orderID)
		}
	}(*user, order.ID, order.Total)

	go func(user models.User, orderID uint, total float64) {
		if err := notifier.SendOrderPlacedEmail(user.Email, user.Username, orderID, total); err != nil {
			logrus.WithError(err).Warnf("failed to send email for order %d", orderID)
		}
	}(*user, order.ID, order.Total)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "order created successfully",
		"order":    order,
		"pay_url":  "/api/payments/" + strconv.FormatUint(uint64(order.ID), 10) + "/intent",
	})
}

// GET /api/orders/my
func MyOrders(c *gin.Context) {
	user := auth.CurrentUser(c)
	var result []models.Order
	if err := db.DB.Preload("Items").Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&result).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": result})
}

// GET /api/orders/owner — orders for restaurants owned by the caller.
func OwnerOrders(c *gin.Context) {
	user := auth.CurrentUser(c)
	var result []models.Order
	err := db.DB.Preload("Items").
		Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
		Where("restaurants.owner_id = ?", user.ID).
		Order("orders.created_at DESC").
		Find(&result).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": result})
}

// POST /api/orders/:order_id/confirm
func ConfirmOrder(c *gin.Context) {
	applyTransition(c, orders.ActionConfirm)
}

// POST /api/orders/:order_id/cancel
func CancelOrder(c *gin.Context) {
	applyTransition(c, orders.ActionCancel)
}

func applyTransition(c *gin.Context, action orders.Action) {
	user := auth.CurrentUser(c)
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := orders.Transition(db.DB, uint(orderID), action, user)
	respondTransition(c, order, err)
}

func respondTransition(c *gin.Context, order *models.Order, err error) {
	switch {
	case err == nil:
		resp := gin.H{"id": order.ID, "status": order.Status}
		if order.CourierID != nil {
			resp["courier_id"] = *order.CourierID
		}
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case errors.Is(err, orders.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		var precondition *orders.PreconditionError
		if errors.As(err, &precondition) {
			c.JSON(http.StatusBadRequest, gin.H{"error": precondition.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
	}
}
