package domain

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// NextOrderStatuses maps a status to the statuses a seller may move it to.
var NextOrderStatuses = map[string][]string{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

type Order struct {
	ID              string      `json:"id"`
	BuyerID         string      `json:"buyerId"`
	SellerID        string      `json:"sellerId"`
	Status          string      `json:"status"`
	TotalCents      int64       `json:"totalCents"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	Items           []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID             string       `json:"id"`
	OrderID        string       `json:"orderId"`
	ProductID      *string      `json:"productId,omitempty"`
	Quantity       int          `json:"quantity"`
	UnitPriceCents int64        `json:"unitPriceCents"`
	Snapshot       LineSnapshot `json:"snapshot"`
}
