package payments

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
)

// EnsureIntent lazily get-or-creates the single Payment row for an order,
// resyncs amount and currency from the order's current total on every call,
// and makes sure a provider intent id exists. The provider intent is created
// at most once: an existing id is always reused, which keeps the operation
// idempotent. Gateway failures degrade to a locally generated opaque id so
// the simulated payment path still works; payment status and order status
// are intentionally not linked here.
func EnsureIntent(gdb *gorm.DB, gw Gateway, order *models.Order, currency string) (*models.Payment, string, error) {
	var payment models.Payment
	err := gdb.Where("order_id = ?", order.ID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		payment = models.Payment{OrderID: order.ID, Provider: models.ProviderStripe}
		if err := gdb.Create(&payment).Error; err != nil {
			return nil, "", err
		}
	} else if err != nil {
		return nil, "", err
	}

	payment.Amount = order.Total
	payment.Currency = currency

	var clientSecret string
	if gw != nil {
		if payment.ProviderIntentID == "" {
			intent, err := gw.CreateIntent(
				int64(math.Round(payment.Amount*100)),
				payment.Currency,
				map[string]string{
					"order_id": strconv.FormatUint(uint64(order.ID), 10),
					"user_id":  strconv.FormatUint(uint64(order.UserID), 10),
				},
			)
			if err != nil {
				logrus.WithError(err).Warnf("gateway intent creation failed for order %d, falling back", order.ID)
			} else {
				payment.ProviderIntentID = intent.ID
			}
		}
		if payment.ProviderIntentID != "" {
			if intent, err := gw.RetrieveIntent(payment.ProviderIntentID); err != nil {
				logrus.WithError(err).Warnf("gateway intent retrieval failed for payment %d", payment.ID)
			} else {
				clientSecret = intent.ClientSecret
			}
		}
	}
	if payment.ProviderIntentID == "" {
		u := uuid.New()
		payment.ProviderIntentID = fmt.Sprintf("pi_%x", u[:])
	}

	payment.Status = models.PaymentRequiresAction
	if err := gdb.Save(&payment).Error; err != nil {
		return nil, "", err
	}
	return &payment, clientSecret, nil
}

// FindForCustomer loads a payment only if its order belongs to the user.
func FindForCustomer(gdb *gorm.DB, paymentID, userID uint) (*models.Payment, error) {
	var payment models.Payment
	err := gdb.Joins("JOIN orders ON orders.id = payments.order_id").
		Where("payments.id = ? AND orders.user_id = ?", paymentID, userID).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// SetStatus overwrites the payment status unconditionally. Used by the
// simulated success/failure endpoints; the order lifecycle is untouched.
func SetStatus(gdb *gorm.DB, payment *models.Payment, status models.PaymentStatus) error {
	payment.Status = status
	return gdb.Model(payment).Update("status", status).Error
}
