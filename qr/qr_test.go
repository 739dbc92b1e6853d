package qr

import (
	"encoding/json"
	"testing"
	"time"

	"campuskitchen/apperr"
	"campuskitchen/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() models.Order {
	return models.Order{
		OrderID:        "order-1736601600000-a1b2c3d4",
		UserID:         "u123",
		Status:         models.OrderPending,
		TrackingStatus: models.TrackingOrderPlaced,
		Total:          230,
		Items: []models.OrderItem{
			{ID: "m1", Name: "Masala Dosa", Price: 80, Quantity: 2},
			{ID: "m2", Name: "Filter Coffee", Price: 70, Quantity: 1},
		},
		UserDetails: models.OrderUserDetails{Name: "Asha", Email: "asha@campus.edu"},
		CreatedAt:   time.Date(2026, 1, 11, 12, 0, 0, 0, time.UTC),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	order := sampleOrder()

	raw := Encode(order)
	payload, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, PayloadType, payload.Type)
	assert.Equal(t, order.OrderID, payload.OrderID)
	assert.Equal(t, order.Total, payload.OrderDetails.Total)
	assert.Len(t, payload.OrderDetails.Items, 2)
	assert.Equal(t, "Masala Dosa", payload.OrderDetails.Items[0].Name)
	assert.Equal(t, 2, payload.OrderDetails.Items[0].Quantity)
	assert.Equal(t, "Asha", payload.UserDetails.Name)
	assert.Equal(t, VerificationCode(order.OrderID), payload.VerificationCode)
	assert.NotZero(t, payload.Timestamp)
}

func TestVerificationCode(t *testing.T) {
	tests := []struct {
		orderID string
		want    string
	}{
		{"order-1736601600000-a1b2c3d4", "B2C3D4"},
		{"abc123", "ABC123"},
		{"xy", "XY"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerificationCode(tt.orderID))
	}
}

func TestDecodeRejectsMalformedPayload(t *testing.T) {
	_, err := Decode("{not json")

	ae := apperr.As(err)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Equal(t, "MalformedPayload", ae.Reason)
}

func TestDecodeRejectsWrongType(t *testing.T) {
	raw, _ := json.Marshal(map[string]any{
		"type":    "parking-pass",
		"orderId": "order-1",
	})

	_, err := Decode(string(raw))

	ae := apperr.As(err)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Equal(t, "WrongType", ae.Reason)
}

func TestEncodeNeverPanicsOnEmptyOrder(t *testing.T) {
	raw := Encode(models.Order{})

	payload, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, PayloadType, payload.Type)
	assert.Empty(t, payload.OrderDetails.Items)
}
