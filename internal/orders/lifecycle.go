package orders

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
)

// Action names a lifecycle transition. All status changes go through
// Transition and the table below; nothing else writes Order.Status.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionAccept   Action = "accept"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// ErrForbidden means the actor's role or relationship to the order does not
// permit the action, regardless of the order's state.
var ErrForbidden = errors.New("forbidden")

// PreconditionError means the order is not in a state the action can be
// applied from. The reason is safe to show to the caller.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string { return e.Reason }

type transition struct {
	from   models.OrderStatus
	to     models.OrderStatus
	reason string
	// allowed re-verifies both the role capability and the actor's
	// relationship to this specific order. Role alone is never enough.
	allowed func(o *models.Order, actor *models.User) bool
}

func isAssignedCourier(o *models.Order, actor *models.User) bool {
	return actor.Role == models.RoleCourier && o.CourierID != nil && *o.CourierID == actor.ID
}

var transitions = map[Action]transition{
	ActionConfirm: {
		from:   models.StatusPlaced,
		to:     models.StatusConfirmed,
		reason: "Order cannot be confirmed from its current status.",
		allowed: func(o *models.Order, actor *models.User) bool {
			ownsRestaurant := actor.Role == models.RoleOwner && o.Restaurant.OwnerID == actor.ID
			return ownsRestaurant || actor.ID == o.UserID
		},
	},
	ActionAccept: {
		from:   models.StatusConfirmed,
		to:     models.StatusAccepted,
		reason: "Order is not available for assignment.",
		allowed: func(o *models.Order, actor *models.User) bool {
			return actor.Role == models.RoleCourier
		},
	},
	ActionStart: {
		from:    models.StatusAccepted,
		to:      models.StatusPickedUp,
		reason:  "Order cannot be picked up from its current status.",
		allowed: isAssignedCourier,
	},
	ActionComplete: {
		from:   models.StatusPickedUp,
		to:     models.StatusDelivered,
		reason: "Order cannot be completed from its current status.",
		allowed: func(o *models.Order, actor *models.User) bool {
			// The customer arm covers the tracking page's auto-complete.
			return isAssignedCourier(o, actor) || actor.ID == o.UserID
		},
	},
	ActionCancel: {
		from:   models.StatusPlaced,
		to:     models.StatusCanceled,
		reason: "Order cannot be canceled from its current status.",
		allowed: func(o *models.Order, actor *models.User) bool {
			return actor.ID == o.UserID
		},
	},
}

// Transition applies one lifecycle action on behalf of an actor. The status
// write is a conditional UPDATE guarded on the expected current state, so it
// doubles as a compare-and-swap: two couriers racing to accept the same
// order cannot both win.
func Transition(gdb *gorm.DB, orderID uint, action Action, actor *models.User) (*models.Order, error) {
	t, ok := transitions[action]
	if !ok {
		return nil, fmt.Errorf("unknown order action %q", action)
	}

	var order models.Order
	if err := gdb.Preload("Restaurant").First(&order, orderID).Error; err != nil {
		return nil, err
	}

	if !t.allowed(&order, actor) {
		return nil, ErrForbidden
	}
	if order.Status != t.from {
		return nil, &PreconditionError{Reason: t.reason}
	}

	updates := map[string]interface{}{"status": t.to}
	query := gdb.Model(&models.Order{}).Where("id = ? AND status = ?", order.ID, t.from)
	if action == ActionAccept {
		// Assignment additionally requires that no courier won the race
		// between our read and this write.
		query = query.Where("courier_id IS NULL")
		updates["courier_id"] = actor.ID
	}

	res := query.Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &PreconditionError{Reason: t.reason}
	}

	if err := gdb.First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
