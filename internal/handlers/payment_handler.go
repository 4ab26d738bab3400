package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/auth"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/db"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/payments"
)

var (
	paymentGateway  payments.Gateway
	paymentCurrency = "usd"
)

// InitPayments injects the gateway and currency resolved in main. A nil
// gateway keeps only the simulated path.
func InitPayments(gw payments.Gateway, currency string) {
	paymentGateway = gw
	if currency != "" {
		paymentCurrency = currency
	}
}

// POST /api/payments/:order_id/intent
func CreatePaymentIntent(c *gin.Context) {
	user := auth.CurrentUser(c)
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var order models.Order
	if err := db.DB.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	payment, clientSecret, err := payments.EnsureIntent(db.DB, paymentGateway, &order, paymentCurrency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare payment"})
		return
	}

	resp := gin.H{
		"id":       payment.ID,
		"provider": payment.Provider,
		"status":   payment.Status,
	}
	if clientSecret != "" {
		resp["client_secret"] = clientSecret
	} else {
		resp["client_secret"] = nil
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/payments/:payment_id
func GetPayment(c *gin.Context) {
	payment := loadOwnPayment(c)
	if payment == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":                 payment.ID,
		"order_id":           payment.OrderID,
		"amount":             payment.Amount,
		"currency":           payment.Currency,
		"status":             payment.Status,
		"provider_intent_id": payment.ProviderIntentID,
	})
}

// POST /api/payments/:payment_id/simulate-success — dev helper used when no
// gateway is configured. Overwrites status regardless of the order state.
func SimulatePaymentSuccess(c *gin.Context) {
	simulatePayment(c, models.PaymentSucceeded)
}

// POST /api/payments/:payment_id/simulate-failure
func SimulatePaymentFailure(c *gin.Context) {
	simulatePayment(c, models.PaymentFailed)
}

func simulatePayment(c *gin.Context, status models.PaymentStatus) {
	payment := loadOwnPayment(c)
	if payment == nil {
		return
	}
	if err := payments.SetStatus(db.DB, payment, status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": payment.Status})
}

// loadOwnPayment resolves :payment_id scoped to the caller's orders, writing
// the error response itself when the lookup fails.
func loadOwnPayment(c *gin.Context) *models.Payment {
	user := auth.CurrentUser(c)
	paymentID, err := strconv.ParseUint(c.Param("payment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return nil
	}

	payment, err := payments.FindForCustomer(db.DB, uint(paymentID), user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load payment"})
		}
		return nil
	}
	return payment
}
