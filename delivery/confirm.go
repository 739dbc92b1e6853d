package delivery

import (
	"time"

	"campuskitchen/apperr"
	"campuskitchen/models"
)

// Partner identifies the delivery partner confirming a handoff.
type Partner struct {
	ID    string
	Name  string
	Email string
}

// CheckConfirmable validates order and owner state before any mutation.
// Rejections here must leave both records untouched.
func CheckConfirmable(order models.Order, user models.User) error {
	if order.DeliveryDetails.Status == models.DeliveryDelivered {
		return apperr.Conflict("AlreadyDelivered", "Order already delivered")
	}
	if order.Status == models.OrderCancelled {
		return apperr.Conflict("OrderCancelled", "Order was cancelled")
	}
	if user.Tokens < order.RequiredTokens() {
		return apperr.Insufficient("InsufficientTokens", "The user doesn't have enough tokens for this delivery")
	}
	return nil
}

// ApplyConfirmation mutates the order and owner in memory: deducts the
// required tokens and marks the order delivered with the partner's
// identity. Returns the tokens deducted. Callers persist both records in
// one transaction.
func ApplyConfirmation(order *models.Order, user *models.User, partner Partner, now time.Time) (int, error) {
	if err := CheckConfirmable(*order, *user); err != nil {
		return 0, err
	}

	required := order.RequiredTokens()
	user.Tokens -= required

	order.DeliveryDetails.Status = models.DeliveryDelivered
	order.DeliveryDetails.DeliveredAt = &now
	order.DeliveryDetails.ScannedAt = &now
	order.DeliveryDetails.DeliveryPartnerID = partner.ID
	order.DeliveryDetails.DeliveryPartnerName = partner.Name
	order.DeliveryDetails.DeliveryPartnerEmail = partner.Email
	order.TrackingStatus = models.TrackingDelivered
	order.Status = models.OrderCompleted
	order.TokenDeducted = true
	order.TokensDeducted = required
	order.LastUpdated = now

	return required, nil
}
