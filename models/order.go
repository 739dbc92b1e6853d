package models

import "time"

// Order status
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Tracking status shown to the customer. The preparing/ready steps have no
// producer in this system; they are display-only until a kitchen-status
// source exists.
const (
	TrackingOrderPlaced = "order_placed"
	TrackingPreparing   = "preparing"
	TrackingReady       = "ready"
	TrackingDelivered   = "delivered"
)

// Delivery status
const (
	DeliveryPending   = "pending"
	DeliveryDelivered = "delivered"
)

// OrderItem is a snapshot of a cart line at checkout time.
type OrderItem struct {
	ID       string  `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

// DeliveryDetails tracks the physical handoff of an order. Status moves
// pending -> delivered exactly once; there is no failed delivery state.
type DeliveryDetails struct {
	Status               string     `json:"status" bson:"status"`
	EstimatedTime        time.Time  `json:"estimatedTime,omitempty" bson:"estimatedTime,omitempty"`
	ScannedAt            *time.Time `json:"scannedAt,omitempty" bson:"scannedAt,omitempty"`
	DeliveredAt          *time.Time `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	DeliveryPartnerID    string     `json:"deliveryPartnerId,omitempty" bson:"deliveryPartnerId,omitempty"`
	DeliveryPartnerName  string     `json:"deliveryPartnerName,omitempty" bson:"deliveryPartnerName,omitempty"`
	DeliveryPartnerEmail string     `json:"deliveryPartnerEmail,omitempty" bson:"deliveryPartnerEmail,omitempty"`
	Location             string     `json:"location,omitempty" bson:"location,omitempty"`
	Phone                string     `json:"phone,omitempty" bson:"phone,omitempty"`
}

// OrderUserDetails is the customer snapshot embedded in the order and its
// QR payload.
type OrderUserDetails struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// Order is immutable once created except for its delivery, tracking and
// token-deduction fields, which the delivery confirmation flow mutates
// exactly once.
type Order struct {
	OrderID         string           `json:"id" bson:"orderid"`
	UserID          string           `json:"userId" bson:"userid"`
	Items           []OrderItem      `json:"items" bson:"items"`
	Total           float64          `json:"total" bson:"total"`
	TotalQuantity   int              `json:"totalQuantity" bson:"totalQuantity"`
	Status          string           `json:"status" bson:"status"`
	TrackingStatus  string           `json:"trackingStatus" bson:"trackingStatus"`
	UsingTokens     bool             `json:"usingTokens" bson:"usingTokens"`
	TokenDeducted   bool             `json:"tokenDeducted" bson:"tokenDeducted"`
	TokensDeducted  int              `json:"tokensDeducted" bson:"tokensDeducted"`
	DeliveryDetails DeliveryDetails  `json:"deliveryDetails" bson:"deliveryDetails"`
	UserDetails     OrderUserDetails `json:"userDetails" bson:"userDetails"`
	CreatedAt       time.Time        `json:"createdAt" bson:"createdAt"`
	LastUpdated     time.Time        `json:"lastUpdated" bson:"lastUpdated"`
}

// RequiredTokens is the token cost of delivering the order: one token per
// item quantity.
func (o *Order) RequiredTokens() int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}
