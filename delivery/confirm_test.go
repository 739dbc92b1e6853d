package delivery

import (
	"errors"
	"testing"
	"time"

	"campuskitchen/apperr"
	"campuskitchen/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scanTime = time.Date(2026, 1, 11, 13, 30, 0, 0, time.UTC)

func pendingOrder() models.Order {
	return models.Order{
		OrderID:        "order-1736601600000-a1b2c3d4",
		UserID:         "u123",
		Status:         models.OrderPending,
		TrackingStatus: models.TrackingOrderPlaced,
		Items: []models.OrderItem{
			{ID: "m1", Name: "Masala Dosa", Price: 80, Quantity: 2},
		},
		DeliveryDetails: models.DeliveryDetails{Status: models.DeliveryPending},
	}
}

func owner(tokens int) models.User {
	return models.User{UserID: "u123", Tokens: tokens}
}

var partner = Partner{ID: "d9", Name: "Ravi", Email: "ravi@campus.edu"}

func TestApplyConfirmationDeductsAndMarksDelivered(t *testing.T) {
	order := pendingOrder()
	user := owner(5)

	deducted, err := ApplyConfirmation(&order, &user, partner, scanTime)
	require.NoError(t, err)

	assert.Equal(t, 2, deducted, "one token per item quantity")
	assert.Equal(t, 3, user.Tokens)
	assert.Equal(t, models.DeliveryDelivered, order.DeliveryDetails.Status)
	assert.Equal(t, models.TrackingDelivered, order.TrackingStatus)
	assert.Equal(t, models.OrderCompleted, order.Status)
	assert.True(t, order.TokenDeducted)
	assert.Equal(t, 2, order.TokensDeducted)
	require.NotNil(t, order.DeliveryDetails.DeliveredAt)
	assert.Equal(t, scanTime, *order.DeliveryDetails.DeliveredAt)
	assert.Equal(t, "d9", order.DeliveryDetails.DeliveryPartnerID)
	assert.Equal(t, "Ravi", order.DeliveryDetails.DeliveryPartnerName)
	assert.Equal(t, "ravi@campus.edu", order.DeliveryDetails.DeliveryPartnerEmail)
}

func TestCheckScanLock(t *testing.T) {
	// Held lock rejects the scan.
	err := checkScanLock(false, nil)
	ae := apperr.As(err)
	assert.Equal(t, apperr.KindStateConflict, ae.Kind)
	assert.Equal(t, "ScanInProgress", ae.Reason)

	// Acquired lock proceeds.
	assert.NoError(t, checkScanLock(true, nil))

	// A Redis failure is not a held lock; the scan proceeds and the
	// transaction remains the duplicate guard.
	assert.NoError(t, checkScanLock(false, errors.New("connection refused")))
}

func TestApplyConfirmationSecondScanRejected(t *testing.T) {
	order := pendingOrder()
	user := owner(5)

	_, err := ApplyConfirmation(&order, &user, partner, scanTime)
	require.NoError(t, err)

	// Same code scanned again: deduction must not repeat.
	_, err = ApplyConfirmation(&order, &user, partner, scanTime.Add(time.Minute))
	ae := apperr.As(err)
	assert.Equal(t, apperr.KindStateConflict, ae.Kind)
	assert.Equal(t, "AlreadyDelivered", ae.Reason)
	assert.Equal(t, 3, user.Tokens, "tokens deducted exactly once")
}

func TestApplyConfirmationInsufficientTokens(t *testing.T) {
	order := pendingOrder()
	user := owner(1) // needs 2

	_, err := ApplyConfirmation(&order, &user, partner, scanTime)

	ae := apperr.As(err)
	assert.Equal(t, apperr.KindInsufficient, ae.Kind)
	assert.Equal(t, "InsufficientTokens", ae.Reason)

	// Rejection leaves both records untouched.
	assert.Equal(t, 1, user.Tokens)
	assert.Equal(t, models.DeliveryPending, order.DeliveryDetails.Status)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.False(t, order.TokenDeducted)
}

func TestApplyConfirmationCancelledOrder(t *testing.T) {
	order := pendingOrder()
	order.Status = models.OrderCancelled
	user := owner(5)

	_, err := ApplyConfirmation(&order, &user, partner, scanTime)

	ae := apperr.As(err)
	assert.Equal(t, apperr.KindStateConflict, ae.Kind)
	assert.Equal(t, "OrderCancelled", ae.Reason)
	assert.Equal(t, 5, user.Tokens)
}

func TestApplyConfirmationExactBalance(t *testing.T) {
	order := pendingOrder()
	user := owner(2)

	deducted, err := ApplyConfirmation(&order, &user, partner, scanTime)
	require.NoError(t, err)

	assert.Equal(t, 2, deducted)
	assert.Equal(t, 0, user.Tokens, "balance may land exactly on zero")
}

func TestRequiredTokensSumsQuantities(t *testing.T) {
	order := pendingOrder()
	order.Items = append(order.Items, models.OrderItem{ID: "m2", Name: "Filter Coffee", Price: 70, Quantity: 3})

	assert.Equal(t, 5, order.RequiredTokens())
}
