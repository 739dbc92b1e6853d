package qr

import (
	"encoding/json"
	"strings"
	"time"

	"campuskitchen/apperr"
	"campuskitchen/models"
)

// PayloadType is the literal every Campus Kitchen order payload carries.
// It is the only integrity check; there is no signature. The
// verificationCode is derived from the public order id, so this scheme is
// only suitable for a low-stakes campus pilot.
const PayloadType = "campus-bite-order"

type PayloadItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type PayloadOrderDetails struct {
	Items          []PayloadItem `json:"items"`
	Total          float64       `json:"total"`
	Status         string        `json:"status"`
	TrackingStatus string        `json:"trackingStatus"`
	CreatedAt      string        `json:"createdAt"`
}

type PayloadUserDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Payload is the data embedded in an order's QR code.
type Payload struct {
	Type             string              `json:"type"`
	OrderID          string              `json:"orderId"`
	Timestamp        int64               `json:"timestamp"`
	OrderDetails     PayloadOrderDetails `json:"orderDetails"`
	UserDetails      PayloadUserDetails  `json:"userDetails"`
	VerificationCode string              `json:"verificationCode"`
	Error            string              `json:"error,omitempty"`
}

// VerificationCode is the last six characters of the order id, upper-cased.
// A human-readable cross-check, not a security token.
func VerificationCode(orderID string) string {
	if len(orderID) <= 6 {
		return strings.ToUpper(orderID)
	}
	return strings.ToUpper(orderID[len(orderID)-6:])
}

// Encode serializes an order into QR payload text. It never fails: if
// marshalling the full payload goes wrong a degraded payload with just the
// order id is returned so the printed code still scans for support.
func Encode(order models.Order) string {
	items := make([]PayloadItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, PayloadItem{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}

	payload := Payload{
		Type:      PayloadType,
		OrderID:   order.OrderID,
		Timestamp: time.Now().UnixMilli(),
		OrderDetails: PayloadOrderDetails{
			Items:          items,
			Total:          order.Total,
			Status:         order.Status,
			TrackingStatus: order.TrackingStatus,
			CreatedAt:      order.CreatedAt.Format(time.RFC3339),
		},
		UserDetails: PayloadUserDetails{
			Name:  order.UserDetails.Name,
			Email: order.UserDetails.Email,
			Phone: order.UserDetails.Phone,
		},
		VerificationCode: VerificationCode(order.OrderID),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		degraded, _ := json.Marshal(Payload{
			Type:    PayloadType,
			OrderID: order.OrderID,
			Error:   "Failed to generate QR code data",
		})
		return string(degraded)
	}
	return string(data)
}

// Decode parses scanned payload text. Only structure and the type literal
// are checked here; order existence and state are re-validated downstream.
func Decode(raw string) (Payload, error) {
	var payload Payload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Payload{}, apperr.Validation("MalformedPayload", "Invalid QR code", "payload is not valid JSON")
	}
	if payload.Type != PayloadType {
		return Payload{}, apperr.Validation("WrongType", "Invalid QR code", "not a Campus Kitchen order code")
	}
	return payload, nil
}
