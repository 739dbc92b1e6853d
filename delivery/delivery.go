package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"campuskitchen/activity"
	"campuskitchen/apperr"
	"campuskitchen/db"
	"campuskitchen/middleware"
	"campuskitchen/models"
	"campuskitchen/orders"
	"campuskitchen/qr"
	"campuskitchen/rdx"
	"campuskitchen/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// lockTTL bounds how long a scan holds the per-order Redis lock.
const lockTTL = 5 * time.Second

// checkScanLock interprets the SetNX result. Only a genuinely held lock
// rejects the scan; a Redis failure falls through to the transaction, which
// is the real duplicate guard, so an outage never blocks deliveries.
func checkScanLock(acquired bool, err error) error {
	if err != nil {
		return nil
	}
	if !acquired {
		return apperr.Conflict("ScanInProgress", "This order is already being scanned")
	}
	return nil
}

// ConfirmDelivery processes a scanned QR payload: validates the order,
// deducts the owner's tokens and marks the order delivered. The deduction
// and the order update are committed in a single transaction that re-checks
// the delivery status inside, so two near-simultaneous scans cannot
// double-deduct.
func ConfirmDelivery(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	partner := Partner{ID: claims.UserID, Name: claims.Username}
	// Claims carry no email; pull it from the partner's account. Best
	// effort, the confirmation proceeds without it.
	var partnerDoc models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": claims.UserID}).Decode(&partnerDoc); err == nil {
		partner.Email = partnerDoc.Email
		if partnerDoc.Name != "" {
			partner.Name = partnerDoc.Name
		}
	}

	var body struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Payload == "" {
		utils.RespondWithAppError(w, apperr.Validation("InvalidPayload", "Invalid QR code", "payload is required"))
		return
	}

	payload, err := qr.Decode(body.Payload)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	// Fast-path duplicate-scan guard; the transaction below is the real
	// defense.
	lockKey := "delivery_lock:" + payload.OrderID
	acquired, lockErr := rdx.RdxSetNX(lockKey, partner.ID, lockTTL)
	if lockErr != nil {
		log.Printf("delivery lock unavailable for %s: %v", payload.OrderID, lockErr)
	}
	if err := checkScanLock(acquired, lockErr); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if lockErr == nil {
		defer rdx.RdxDel(lockKey)
	}

	session, err := db.Client.StartSession()
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to start transaction", err))
		return
	}
	defer session.EndSession(ctx)

	var confirmed models.Order
	var deducted int

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var order models.Order
		if err := db.OrdersCollection.FindOne(sc, bson.M{"orderid": payload.OrderID}).Decode(&order); err != nil {
			return nil, apperr.NotFound("OrderNotFound", "Order not found")
		}

		var owner models.User
		if err := db.UserCollection.FindOne(sc, bson.M{"userid": order.UserID}).Decode(&owner); err != nil {
			return nil, apperr.NotFound("UserNotFound", "Order owner not found")
		}

		required, err := ApplyConfirmation(&order, &owner, partner, time.Now())
		if err != nil {
			return nil, err
		}

		if _, err := db.UserCollection.UpdateOne(sc,
			bson.M{"userid": owner.UserID},
			bson.M{"$set": bson.M{"tokens": owner.Tokens}},
		); err != nil {
			return nil, apperr.External("Failed to deduct tokens", err)
		}

		// Delivery status is part of the filter so a concurrent commit
		// makes this write match nothing and the transaction aborts.
		res, err := db.OrdersCollection.UpdateOne(sc,
			bson.M{"orderid": order.OrderID, "deliveryDetails.status": models.DeliveryPending},
			bson.M{"$set": bson.M{
				"deliveryDetails": order.DeliveryDetails,
				"trackingStatus":  order.TrackingStatus,
				"status":          order.Status,
				"tokenDeducted":   order.TokenDeducted,
				"tokensDeducted":  order.TokensDeducted,
				"lastUpdated":     order.LastUpdated,
			}},
		)
		if err != nil {
			return nil, apperr.External("Failed to update order", err)
		}
		if res.MatchedCount == 0 {
			return nil, apperr.Conflict("AlreadyDelivered", "Order already delivered")
		}

		confirmed = order
		deducted = required
		return nil, nil
	})
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	activity.Record(ctx, confirmed.UserID, activity.TypeOrderDelivered,
		fmt.Sprintf("Order #%s delivered by %s", confirmed.OrderID, partner.Name),
		map[string]any{"orderId": confirmed.OrderID, "partnerId": partner.ID})
	activity.Record(ctx, confirmed.UserID, activity.TypeTokensUsed,
		fmt.Sprintf("%d tokens used for order #%s", deducted, confirmed.OrderID), nil)

	orders.Hub.NotifyUser(confirmed.UserID, map[string]any{
		"event": "order_delivered",
		"order": confirmed,
	})

	log.Printf("delivery confirmed: order=%s partner=%s tokens=%d", confirmed.OrderID, partner.ID, deducted)

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"orderId":        confirmed.OrderID,
		"tokensDeducted": deducted,
		"message":        "Order has been marked as delivered and tokens have been deducted.",
	})
}

// DeliveryStats returns the counters shown on the scanner page: pending
// deliveries and the partner's completions today.
func DeliveryStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	partnerID := utils.GetUserIDFromRequest(r)

	pending, err := db.OrdersCollection.CountDocuments(ctx, bson.M{
		"deliveryDetails.status": models.DeliveryPending,
		"status":                 models.OrderPending,
	})
	if err != nil {
		http.Error(w, "Failed to count pending deliveries", http.StatusInternalServerError)
		return
	}

	dayStart := time.Now().Truncate(24 * time.Hour)
	completedToday, err := db.OrdersCollection.CountDocuments(ctx, bson.M{
		"deliveryDetails.status":            models.DeliveryDelivered,
		"deliveryDetails.deliveryPartnerId": partnerID,
		"deliveryDetails.deliveredAt":       bson.M{"$gte": dayStart},
	})
	if err != nil {
		http.Error(w, "Failed to count completed deliveries", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"pending":        pending,
		"completedToday": completedToday,
	})
}
