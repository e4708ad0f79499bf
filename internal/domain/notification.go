package domain

import "time"

const (
	NotificationOrderPlaced         = "order_placed"
	NotificationOrderStatusChanged  = "order_status_changed"
	NotificationConsultationBooked  = "consultation_booked"
	NotificationConsultationUpdated = "consultation_updated"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	EntityID  *string   `json:"entityId,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
