package models

import "time"

// OrderStatus is the order lifecycle state. Orders move
// placed -> confirmed -> accepted -> picked_up -> delivered, with canceled
// reachable from placed. StatusPending survives only so historical rows from
// the legacy schema still scan; nothing transitions into or out of it.
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusConfirmed OrderStatus = "confirmed"
	StatusAccepted  OrderStatus = "accepted"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"

	// Legacy value retained for backward compatibility with old rows.
	StatusPending OrderStatus = "pending"
)

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"index;not null" json:"user_id"`
	User            User        `json:"-"`
	RestaurantID    uint        `gorm:"index;not null" json:"restaurant_id"`
	Restaurant      Restaurant  `json:"-"`
	CourierID       *uint       `gorm:"index" json:"courier_id"`
	Status          OrderStatus `gorm:"not null;default:'placed'" json:"status"`
	Subtotal        float64     `gorm:"not null;default:0" json:"subtotal"`
	DeliveryFee     float64     `gorm:"not null;default:0" json:"delivery_fee"`
	Total           float64     `gorm:"not null;default:0" json:"total"`
	DeliveryAddress string      `json:"delivery_address"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// RecalcTotals recomputes the stored totals from the line items. The delivery
// fee is a flat zero for now; it is stored separately so a per-restaurant or
// distance-based fee can be introduced without a schema change.
func (o *Order) RecalcTotals() {
	subtotal := 0.0
	for _, item := range o.Items {
		subtotal += item.LineTotal()
	}
	o.Subtotal = subtotal
	o.DeliveryFee = 0
	o.Total = o.Subtotal + o.DeliveryFee
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `json:"-"`
	Quantity  uint    `gorm:"not null" json:"quantity"`
	// PriceAtTime snapshots the product price at checkout so later catalog
	// edits never alter historical order totals.
	PriceAtTime float64 `gorm:"not null" json:"price_at_time"`
}

func (i OrderItem) LineTotal() float64 {
	return i.PriceAtTime * float64(i.Quantity)
}
